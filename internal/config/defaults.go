package config

import "github.com/temirov/codecollect/internal/types"

// DefaultOutputFileName is the artifact written when no output file is given.
const DefaultOutputFileName = "full_code.txt"

// DefaultTokenizerModel is the model used for token estimates when none is configured.
const DefaultTokenizerModel = "gpt-4o"

// DefaultIncludeExtensions returns the programming and configuration extensions
// aggregated when no extensions are supplied. The empty extension admits files
// such as Makefile or Dockerfile.
func DefaultIncludeExtensions() types.StringSet {
	return types.NewStringSet(
		"", ".py", ".java", ".c", ".cpp", ".h", ".hpp", ".cs", ".vb", ".r", ".rb",
		".go", ".php", ".swift", ".kt", ".rs", ".scala", ".pl", ".lua", ".jl",
		".js", ".jsx", ".ts", ".tsx", ".html", ".css", ".scss", ".less", ".sass",
		".sh", ".zsh", ".fish", ".ps1", ".bat", ".cmd", ".sql", ".psql", ".db",
		".sqlite", ".xml", ".json", ".toml", ".ini", ".yml", ".yaml",
		".rst", ".Makefile", ".gradle", ".cmake", ".ninja", ".pqm", ".pq",
	)
}

// DefaultExcludeDirectories returns the directory names pruned when none are supplied.
func DefaultExcludeDirectories() types.StringSet {
	return types.NewStringSet(
		"venv", "node_modules", "__pycache__", ".git", "dist", "build", "temp",
		"tempDir", "linux64GccDPInt32Opt", "old_files", "flask_session",
	)
}

// DefaultExcludeFiles returns the housekeeping files never aggregated or listed.
func DefaultExcludeFiles() types.StringSet {
	return types.NewStringSet(
		"codecollect",
		"package-lock.json", "package.json", "temp.py", ".gitignore",
		DefaultOutputFileName,
	)
}

// DefaultFilterDefaults bundles the built-in fallback sets.
func DefaultFilterDefaults() FilterDefaults {
	return FilterDefaults{
		IncludeExtensions:  DefaultIncludeExtensions(),
		ExcludeDirectories: DefaultExcludeDirectories(),
		ExcludeFiles:       DefaultExcludeFiles(),
	}
}
