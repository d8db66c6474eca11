package dispatchers

type CommandCategory int

const (
	CategoryUncategorized CommandCategory = iota
	CategoryManifest                      // Viewing and editing the manifest
	CategoryInstall                       // Downloading and installing resources
	CategoryConfig                        // Configuration
	CategorySession                       // Help, exit
)

func (c CommandCategory) String() string {
	switch c {
	case CategoryManifest:
		return "edit the manifest"
	case CategoryInstall:
		return "install resources"
	case CategoryConfig:
		return "configure srcdsrm"
	case CategorySession:
		return "session"
	default:
		return "other commands"
	}
}

var categoryOrder = []CommandCategory{
	CategoryManifest,
	CategoryInstall,
	CategoryConfig,
	CategorySession,
	CategoryUncategorized,
}
