package cli

func (c *RootCommand) initFlags() {
	c.PersistentFlags().StringVarP(
		&c.Options.ConfigPath,
		"config",
		"c",
		".env",
		"Path to the .env file with BUFMGR_* settings",
	)
}
