package npc

import (
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/finalroom/prefabs"
)

// Host is what a script can reach through its engine map.
type Host interface {
	Animate()
	Register(id string)
	Prompt(text string, seconds float64)
}

const (
	hookStart = "on_start"
	hookLine  = "on_line"
	hookEnd   = "on_end"
)

var hookCalls = map[string]string{
	hookStart: "on_start(__engine, __state)",
	hookLine:  "on_line(__engine, __state, __speaker, __index, __text)",
	hookEnd:   "on_end(__engine, __state)",
}

// Script is a compiled NPC conversation script. It keeps its state map
// across calls.
type Script struct {
	Name     string
	compiled *tengo.Compiled
	state    *tengo.Map
	hooks    map[string]bool
}

func LoadScript(name, path string) (*Script, error) {
	src, err := prefabs.LoadScript(path)
	if err != nil {
		return nil, err
	}
	return CompileScript(name, src)
}

// CompileScript builds a script from source. Hooks the source does not
// define are skipped at call time.
func CompileScript(name string, src []byte) (*Script, error) {
	trial, err := newTengoScript(src).Compile()
	if err != nil {
		return nil, fmt.Errorf("npc: compile %s: %w", name, err)
	}
	if err := trial.Run(); err != nil {
		return nil, fmt.Errorf("npc: run %s: %w", name, err)
	}

	hooks := map[string]bool{}
	var dispatch strings.Builder
	for _, hook := range []string{hookStart, hookLine, hookEnd} {
		if !trial.IsDefined(hook) {
			continue
		}
		hooks[hook] = true
		fmt.Fprintf(&dispatch, "if __phase == %q {\n\t%s\n}\n", hook, hookCalls[hook])
	}

	full := string(src) + "\n" + dispatch.String()
	compiled, err := newTengoScript([]byte(full)).Compile()
	if err != nil {
		return nil, fmt.Errorf("npc: compile %s: %w", name, err)
	}

	return &Script{
		Name:     name,
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
		hooks:    hooks,
	}, nil
}

func newTengoScript(src []byte) *tengo.Script {
	script := tengo.NewScript(src)
	_ = script.Add("__phase", "")
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	_ = script.Add("__speaker", "")
	_ = script.Add("__index", 0)
	_ = script.Add("__text", "")
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	return script
}

func (s *Script) Has(hook string) bool {
	return s != nil && s.hooks[hook]
}

func (s *Script) Start(h Host) {
	s.call(hookStart, h, "", 0, "")
}

func (s *Script) Line(h Host, speaker string, index int, text string) {
	s.call(hookLine, h, speaker, index, text)
}

func (s *Script) End(h Host) {
	s.call(hookEnd, h, "", 0, "")
}

// State returns a Go copy of the script's persistent state.
func (s *Script) State() map[string]any {
	if s == nil {
		return nil
	}
	out, _ := objectToAny(s.state).(map[string]any)
	return out
}

func (s *Script) call(hook string, h Host, speaker string, index int, text string) {
	if !s.Has(hook) {
		return
	}
	if err := s.run(hook, h, speaker, index, text); err != nil {
		log.Printf("npc: %s script %s error: %v", s.Name, hook, err)
	}
}

func (s *Script) run(phase string, h Host, speaker string, index int, text string) error {
	values := map[string]any{
		"__phase":   phase,
		"__engine":  buildEngine(s.Name, h),
		"__state":   s.state,
		"__speaker": speaker,
		"__index":   index,
		"__text":    text,
	}
	for k, v := range values {
		if err := s.compiled.Set(k, v); err != nil {
			return err
		}
	}
	return s.compiled.Run()
}

func buildEngine(name string, h Host) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["animate"] = &tengo.UserFunction{Name: "animate", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if h == nil {
			return tengo.FalseValue, nil
		}
		h.Animate()
		return tengo.TrueValue, nil
	}}

	values["register"] = &tengo.UserFunction{Name: "register", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if h == nil || len(args) < 1 {
			return tengo.FalseValue, nil
		}
		id := strings.TrimSpace(objectAsString(args[0]))
		if id == "" {
			return tengo.FalseValue, nil
		}
		h.Register(id)
		return tengo.TrueValue, nil
	}}

	values["prompt"] = &tengo.UserFunction{Name: "prompt", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if h == nil || len(args) < 1 {
			return tengo.FalseValue, nil
		}
		seconds := 2.0
		if len(args) > 1 {
			if v, ok := tengo.ToFloat64(args[1]); ok {
				seconds = v
			}
		}
		h.Prompt(objectAsString(args[0]), seconds)
		return tengo.TrueValue, nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, objectAsString(a))
		}
		log.Printf("npc: %s: %s", name, strings.Join(parts, " "))
		return tengo.UndefinedValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}

func objectToAny(obj tengo.Object) any {
	if obj == nil {
		return nil
	}

	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	case *tengo.Int:
		return int(v.Value)
	case *tengo.Float:
		return v.Value
	case *tengo.Bool:
		return !v.IsFalsy()
	case *tengo.Array:
		out := make([]any, 0, len(v.Value))
		for _, item := range v.Value {
			out = append(out, objectToAny(item))
		}
		return out
	case *tengo.Map:
		out := make(map[string]any, len(v.Value))
		for k, item := range v.Value {
			out[k] = objectToAny(item)
		}
		return out
	case *tengo.Undefined:
		return nil
	default:
		return v.String()
	}
}
