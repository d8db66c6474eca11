package actions

// ShowVersion prints the program version.
func ShowVersion() error {
	return showVersion(defaultDeps())
}

func showVersion(deps Deps) error {
	_, _ = deps.Printf("srcdsrm version %v\n", deps.Version())
	return nil
}
