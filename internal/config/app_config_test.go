package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/codecollect/internal/utils"
)

type configTestCase struct {
	name             string
	globalContent    string
	localContent     string
	explicitPath     string
	explicitContent  string
	expectOutputFile string
	expectClipboard  *bool
	expectExtensions []string
	expectExcludes   []string
	expectTokens     *bool
	expectModel      string
}

func boolPointer(value bool) *bool {
	pointer := value
	return &pointer
}

func TestLoadApplicationConfigurationMergesSources(t *testing.T) {
	testCases := []configTestCase{
		{
			name:             "local_overrides_global",
			globalContent:    "output_file: global.txt\nclipboard: true\nextensions: [\".go\"]\nexclude_dirs: [vendor]\n",
			localContent:     "clipboard: false\nextensions: [\".py\", \".py\", \".md\"]\ntokens:\n  enabled: true\n  model: custom\n",
			expectOutputFile: "global.txt",
			expectClipboard:  boolPointer(false),
			expectExtensions: []string{".py", ".md"},
			expectExcludes:   []string{"vendor"},
			expectTokens:     boolPointer(true),
			expectModel:      "custom",
		},
		{
			name:             "explicit_path_replaces_local",
			localContent:     "output_file: local.txt\n",
			explicitPath:     "custom.yaml",
			explicitContent:  "output_file: explicit.txt\n",
			expectOutputFile: "explicit.txt",
		},
		{
			name:             "comma_string_becomes_list",
			localContent:     "exclude_dirs: \"node_modules,dist\"\n",
			expectExcludes:   []string{"node_modules", "dist"},
			expectOutputFile: "",
		},
		{
			name: "no_files",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			homeDir := t.TempDir()
			workingDir := t.TempDir()
			configDir := filepath.Join(homeDir, utils.GlobalConfigDirectoryName)
			if err := os.MkdirAll(configDir, 0o755); err != nil {
				t.Fatalf("create config dir: %v", err)
			}
			if testCase.globalContent != "" {
				globalPath := filepath.Join(configDir, utils.GlobalConfigFileName)
				if err := os.WriteFile(globalPath, []byte(testCase.globalContent), 0o600); err != nil {
					t.Fatalf("write global config: %v", err)
				}
			}
			if testCase.localContent != "" {
				localPath := filepath.Join(workingDir, utils.LocalConfigFileName)
				if err := os.WriteFile(localPath, []byte(testCase.localContent), 0o600); err != nil {
					t.Fatalf("write local config: %v", err)
				}
			}
			if testCase.explicitPath != "" {
				target := filepath.Join(workingDir, testCase.explicitPath)
				if err := os.WriteFile(target, []byte(testCase.explicitContent), 0o600); err != nil {
					t.Fatalf("write explicit config: %v", err)
				}
			}

			t.Setenv("HOME", homeDir)
			t.Setenv("USERPROFILE", homeDir)

			loadedConfig, err := LoadApplicationConfiguration(LoadOptions{
				WorkingDirectory: workingDir,
				ExplicitFilePath: testCase.explicitPath,
			})
			if err != nil {
				t.Fatalf("LoadApplicationConfiguration error: %v", err)
			}

			if loadedConfig.OutputFile != testCase.expectOutputFile {
				t.Fatalf("expected output file %q, got %q", testCase.expectOutputFile, loadedConfig.OutputFile)
			}
			if testCase.expectClipboard == nil {
				if loadedConfig.Clipboard != nil {
					t.Fatalf("expected no clipboard override")
				}
			} else if loadedConfig.Clipboard == nil || *loadedConfig.Clipboard != *testCase.expectClipboard {
				t.Fatalf("unexpected clipboard value")
			}
			if len(testCase.expectExtensions) > 0 && !reflect.DeepEqual(loadedConfig.Extensions, testCase.expectExtensions) {
				t.Fatalf("expected extensions %v, got %v", testCase.expectExtensions, loadedConfig.Extensions)
			}
			if len(testCase.expectExcludes) > 0 && !reflect.DeepEqual(loadedConfig.ExcludeDirs, testCase.expectExcludes) {
				t.Fatalf("expected exclude dirs %v, got %v", testCase.expectExcludes, loadedConfig.ExcludeDirs)
			}
			if testCase.expectTokens == nil {
				if loadedConfig.Tokens.Enabled != nil {
					t.Fatalf("expected no tokens override")
				}
			} else if loadedConfig.Tokens.Enabled == nil || *loadedConfig.Tokens.Enabled != *testCase.expectTokens {
				t.Fatalf("unexpected tokens enabled value")
			}
			if loadedConfig.Tokens.Model != testCase.expectModel {
				t.Fatalf("expected model %q, got %q", testCase.expectModel, loadedConfig.Tokens.Model)
			}
		})
	}
}

func TestLoadApplicationConfigurationMissingExplicitFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("USERPROFILE", os.Getenv("HOME"))
	_, err := LoadApplicationConfiguration(LoadOptions{
		WorkingDirectory: t.TempDir(),
		ExplicitFilePath: "absent.yaml",
	})
	if err == nil {
		t.Fatalf("expected error for missing explicit configuration file")
	}
}

// denyStat makes statConfigurationPath fail with a permission error for deniedPath.
func denyStat(t *testing.T, deniedPath string) {
	t.Helper()
	originalStat := statConfigurationPath
	statConfigurationPath = func(path string) (os.FileInfo, error) {
		if path == deniedPath {
			return nil, &fs.PathError{Op: "stat", Path: path, Err: fs.ErrPermission}
		}
		return originalStat(path)
	}
	t.Cleanup(func() { statConfigurationPath = originalStat })
}

func TestLoadApplicationConfigurationSkipsUnreadableGlobalFile(t *testing.T) {
	homeDirectory := t.TempDir()
	t.Setenv("HOME", homeDirectory)
	t.Setenv("USERPROFILE", homeDirectory)
	globalPath := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.GlobalConfigFileName)
	denyStat(t, globalPath)

	workingDirectory := t.TempDir()
	localPath := filepath.Join(workingDirectory, utils.LocalConfigFileName)
	if err := os.WriteFile(localPath, []byte("output_file: local.txt\n"), 0o600); err != nil {
		t.Fatalf("write local configuration: %v", err)
	}
	observedCore, observedLogs := observer.New(zap.WarnLevel)

	loadedConfig, err := LoadApplicationConfiguration(LoadOptions{
		WorkingDirectory: workingDirectory,
		Logger:           zap.New(observedCore),
	})
	if err != nil {
		t.Fatalf("unreadable global configuration must not fail loading: %v", err)
	}
	if loadedConfig.OutputFile != "local.txt" {
		t.Fatalf("expected local configuration to load, got %q", loadedConfig.OutputFile)
	}
	warnings := observedLogs.FilterMessage(warningUnreadableConfigMessage).All()
	if len(warnings) != 1 || warnings[0].ContextMap()["path"] != globalPath {
		t.Fatalf("expected one warning for %s, got %v", globalPath, observedLogs.All())
	}
}

func TestLoadApplicationConfigurationFailsOnUnreadableExplicitFile(t *testing.T) {
	homeDirectory := t.TempDir()
	t.Setenv("HOME", homeDirectory)
	t.Setenv("USERPROFILE", homeDirectory)
	workingDirectory := t.TempDir()
	explicitPath := filepath.Join(workingDirectory, "custom.yaml")
	denyStat(t, explicitPath)

	_, err := LoadApplicationConfiguration(LoadOptions{
		WorkingDirectory: workingDirectory,
		ExplicitFilePath: explicitPath,
	})
	if err == nil {
		t.Fatalf("expected an error for an unreadable explicit configuration")
	}
}
