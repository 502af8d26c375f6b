package component

// ReloadRequest is a short-lived entity asking the reload system to refresh
// whatever was built from Path: NPC scripts for .tengo files, prefab
// settings for .yaml files.
type ReloadRequest struct {
	Path string
}

var ReloadRequestComponent = NewComponent[ReloadRequest]()
