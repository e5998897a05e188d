package domain

// PluginMetadata describes an external signal decoder.
type PluginMetadata struct {
	Name    string
	Version string
	Layout  string
}
