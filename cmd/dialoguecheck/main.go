// Command dialoguecheck splits NPC paragraphs into lines the way the game
// shows them, to proofread speaker tags before playing.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/milk9111/finalroom/dialogue"
	"github.com/milk9111/finalroom/levels"
	"golang.design/x/clipboard"
	"gopkg.in/yaml.v3"
)

type line struct {
	Speaker  string `yaml:"speaker"`
	Text     string `yaml:"text"`
	Explicit bool   `yaml:"explicit,omitempty"`
}

type conversation struct {
	Name  string `yaml:"name"`
	Lines []line `yaml:"lines"`
}

func parse(p dialogue.Parser, name, paragraph string) conversation {
	c := conversation{Name: name, Lines: []line{}}
	for l := range p.Lines(paragraph) {
		c.Lines = append(c.Lines, line{Speaker: l.Speaker.String(), Text: l.Text, Explicit: l.Explicit})
	}
	return c
}

// fromScene collects the talk paragraphs set on a scene's entities.
func fromScene(p dialogue.Parser, name string) ([]conversation, error) {
	scene, err := levels.LoadSceneFromFS(name)
	if err != nil {
		return nil, err
	}
	var out []conversation
	for _, ent := range scene.Entities {
		talk, ok := ent.Components["talk"].(map[string]any)
		if !ok {
			continue
		}
		paragraph, _ := talk["paragraph"].(string)
		out = append(out, parse(p, ent.Name, paragraph))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func render(convs []conversation, asYAML bool) (string, error) {
	if asYAML {
		b, err := yaml.Marshal(convs)
		if err != nil {
			return "", fmt.Errorf("marshal: %w", err)
		}
		return string(b), nil
	}
	var sb strings.Builder
	for _, c := range convs {
		fmt.Fprintf(&sb, "%s (%d lines)\n", c.Name, len(c.Lines))
		for i, l := range c.Lines {
			tag := " "
			if !l.Explicit {
				tag = "~"
			}
			fmt.Fprintf(&sb, "  %2d %s%-6s %s\n", i+1, tag, l.Speaker, l.Text)
		}
	}
	return sb.String(), nil
}

// empty names the conversations that would never open.
func empty(convs []conversation) []string {
	var out []string
	for _, c := range convs {
		if len(c.Lines) == 0 {
			out = append(out, c.Name)
		}
	}
	return out
}

func main() {
	sceneName := flag.String("scene", "final_room", "scene in levels/ to read talk paragraphs from")
	asYAML := flag.Bool("yaml", false, "print YAML instead of a table")
	copyOut := flag.Bool("copy", false, "copy the output to the clipboard")
	playerDefault := flag.Bool("player", false, "untagged opening lines belong to the player")
	flag.Parse()

	p := dialogue.NewParser()
	if *playerDefault {
		p.DefaultSpeaker = dialogue.SpeakerPlayer
	}

	var convs []conversation
	if flag.NArg() > 0 {
		convs = []conversation{parse(p, "args", strings.Join(flag.Args(), " "))}
	} else {
		var err error
		if convs, err = fromScene(p, *sceneName); err != nil {
			log.Fatal(err)
		}
	}

	out, err := render(convs, *asYAML)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Print(out)

	if *copyOut {
		if err := clipboard.Init(); err != nil {
			log.Printf("clipboard unavailable: %v", err)
		} else {
			clipboard.Write(clipboard.FmtText, []byte(out))
		}
	}

	if names := empty(convs); len(names) > 0 {
		log.Printf("no lines: %s", strings.Join(names, ", "))
		os.Exit(1)
	}
}
