package main

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort = "Read and write user-specific application preferences"
	MsgRootLong = `prefs reads and writes user-specific application data from the
operating system's standard per-user locations. Preferences are grouped
by application (name and author) and addressed by hierarchical keys such
as "options/graphics".`
	MsgGetShort        = "Print a preference, or one of its fields"
	MsgSetShort        = "Set a field of a preference"
	MsgListShort       = "List saved preference keys for an application"
	MsgDeleteShort     = "Delete a preference"
	MsgPathShort       = "Print the file path backing a preference key"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgSetFormat     = "Set %s = %s in '%s'\n"
	MsgDeletedFormat = "Deleted '%s'\n"

	// Flag descriptions
	MsgFlagApp     = "Application name (overrides configuration)"
	MsgFlagAuthor  = "Application author (overrides configuration)"
	MsgFlagFormat  = "Serialization format: json, toml, yaml or xml"
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagNoColor = "Disable styled output"
)
