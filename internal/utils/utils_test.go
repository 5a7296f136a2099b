package utils_test

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/temirov/codecollect/internal/utils"
)

// TestDeduplicatePatterns verifies that DeduplicatePatterns removes duplicate patterns.
func TestDeduplicatePatterns(testingInstance *testing.T) {
	testCases := []struct {
		testName string
		patterns []string
		expected []string
	}{
		{
			testName: "removes duplicates",
			patterns: []string{"a", "b", "a"},
			expected: []string{"a", "b"},
		},
		{
			testName: "keeps unique",
			patterns: []string{"a", "b"},
			expected: []string{"a", "b"},
		},
	}
	for index, testCase := range testCases {
		actual := utils.DeduplicatePatterns(testCase.patterns)
		if !reflect.DeepEqual(actual, testCase.expected) {
			testingInstance.Errorf("case %d (%s): expected %v, got %v", index, testCase.testName, testCase.expected, actual)
		}
	}
}

// TestPathSegments verifies splitting of relative paths.
func TestPathSegments(testingInstance *testing.T) {
	testCases := []struct {
		testName string
		path     string
		expected []string
	}{
		{testName: "current directory", path: ".", expected: nil},
		{testName: "single file", path: "main.go", expected: []string{"main.go"}},
		{testName: "nested", path: "a/b/c.py", expected: []string{"a", "b", "c.py"}},
		{testName: "unclean", path: "./a//b/", expected: []string{"a", "b"}},
	}
	for index, testCase := range testCases {
		actual := utils.PathSegments(testCase.path)
		if !reflect.DeepEqual(actual, testCase.expected) {
			testingInstance.Errorf("case %d (%s): expected %v, got %v", index, testCase.testName, testCase.expected, actual)
		}
	}
}

// TestFileExtension verifies extension extraction including dotfiles.
func TestFileExtension(testingInstance *testing.T) {
	testCases := []struct {
		fileName string
		expected string
	}{
		{fileName: "main.go", expected: ".go"},
		{fileName: "Makefile", expected: ""},
		{fileName: ".gitignore", expected: ""},
		{fileName: "..hidden", expected: ""},
		{fileName: ".env.local", expected: ".local"},
		{fileName: "archive.tar.gz", expected: ".gz"},
		{fileName: "trailing.", expected: "."},
		{fileName: "dir/Script.PY", expected: ".PY"},
	}
	for _, testCase := range testCases {
		actual := utils.FileExtension(testCase.fileName)
		if actual != testCase.expected {
			testingInstance.Errorf("%s: expected %q, got %q", testCase.fileName, testCase.expected, actual)
		}
	}
}

// TestDecodeText verifies UTF-8 validation of file content.
func TestDecodeText(testingInstance *testing.T) {
	decoded, decodeError := utils.DecodeText([]byte("héllo\x00world"))
	if decodeError != nil {
		testingInstance.Fatalf("unexpected error: %v", decodeError)
	}
	if decoded != "héllo\x00world" {
		testingInstance.Fatalf("unexpected decoded text %q", decoded)
	}

	_, decodeError = utils.DecodeText([]byte{'o', 'k', 0xff, 'x'})
	if decodeError == nil {
		testingInstance.Fatalf("expected decode error")
	}
	if !strings.Contains(decodeError.Error(), "0xff at offset 2") {
		testingInstance.Fatalf("unexpected decode error %q", decodeError.Error())
	}
}

// TestNewConsoleLoggerWritesMessageOnly verifies the console encoder omits level and time.
func TestNewConsoleLoggerWritesMessageOnly(testingInstance *testing.T) {
	var buffer bytes.Buffer
	logger := utils.NewConsoleLogger(&buffer)
	logger.Info("Copied to clipboard.")
	if syncError := logger.Sync(); syncError != nil {
		testingInstance.Fatalf("sync failed: %v", syncError)
	}
	if buffer.String() != "Copied to clipboard.\n" {
		testingInstance.Fatalf("unexpected log output %q", buffer.String())
	}
}
