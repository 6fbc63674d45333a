package pathvalue_test

import (
	"fmt"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/pathext/internal/pathvalue"
)

const (
	subtestNameTemplateConstant = "%d_%s"
)

func TestPosixParseDecomposition(testInstance *testing.T) {
	testCases := []struct {
		name             string
		input            string
		expectedString   string
		expectedRoot     string
		expectedParts    []string
		expectedName     string
		expectedStem     string
		expectedSuffix   string
		expectedSuffixes []string
	}{
		{name: "empty", input: "", expectedString: ".", expectedParts: []string{}, expectedSuffixes: []string{}},
		{name: "dot", input: ".", expectedString: ".", expectedParts: []string{}, expectedSuffixes: []string{}},
		{name: "root_only", input: "/", expectedString: "/", expectedRoot: "/", expectedParts: []string{"/"}, expectedSuffixes: []string{}},
		{
			name:             "relative_archive",
			input:            "a/b.tar.gz",
			expectedString:   "a/b.tar.gz",
			expectedParts:    []string{"a", "b.tar.gz"},
			expectedName:     "b.tar.gz",
			expectedStem:     "b.tar",
			expectedSuffix:   ".gz",
			expectedSuffixes: []string{".tar", ".gz"},
		},
		{
			name:             "redundant_separators_and_dots",
			input:            "/a//b/./c/",
			expectedString:   "/a/b/c",
			expectedRoot:     "/",
			expectedParts:    []string{"/", "a", "b", "c"},
			expectedName:     "c",
			expectedStem:     "c",
			expectedSuffixes: []string{},
		},
		{
			name:             "double_slash_root",
			input:            "//server/x",
			expectedString:   "//server/x",
			expectedRoot:     "//",
			expectedParts:    []string{"//", "server", "x"},
			expectedName:     "x",
			expectedStem:     "x",
			expectedSuffixes: []string{},
		},
		{
			name:             "triple_slash_root",
			input:            "///a",
			expectedString:   "/a",
			expectedRoot:     "/",
			expectedParts:    []string{"/", "a"},
			expectedName:     "a",
			expectedStem:     "a",
			expectedSuffixes: []string{},
		},
		{
			name:             "parent_reference_kept",
			input:            "a/../b",
			expectedString:   "a/../b",
			expectedParts:    []string{"a", "..", "b"},
			expectedName:     "b",
			expectedStem:     "b",
			expectedSuffixes: []string{},
		},
		{
			name:             "leading_dots_only",
			input:            "a/...",
			expectedString:   "a/...",
			expectedParts:    []string{"a", "..."},
			expectedName:     "...",
			expectedStem:     "...",
			expectedSuffixes: []string{},
		},
		{
			name:             "hidden_file",
			input:            ".bashrc",
			expectedString:   ".bashrc",
			expectedParts:    []string{".bashrc"},
			expectedName:     ".bashrc",
			expectedStem:     ".bashrc",
			expectedSuffixes: []string{},
		},
		{
			name:             "trailing_dot",
			input:            "b.",
			expectedString:   "b.",
			expectedParts:    []string{"b."},
			expectedName:     "b.",
			expectedStem:     "b.",
			expectedSuffixes: []string{},
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(subtestNameTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			parsedPath := pathvalue.Posix.Parse(testCase.input)

			require.Equal(testInstance, testCase.expectedString, parsedPath.String())
			require.Empty(testInstance, parsedPath.Drive())
			require.Equal(testInstance, testCase.expectedRoot, parsedPath.Root())
			require.Equal(testInstance, testCase.expectedParts, nonNilParts(parsedPath))
			require.Equal(testInstance, testCase.expectedName, parsedPath.Name())
			require.Equal(testInstance, testCase.expectedStem, parsedPath.Stem())
			require.Equal(testInstance, testCase.expectedSuffix, parsedPath.Suffix())
			require.Equal(testInstance, testCase.expectedSuffixes, parsedPath.Suffixes())
		})
	}
}

func TestWindowsParseDecomposition(testInstance *testing.T) {
	testCases := []struct {
		name           string
		input          string
		expectedString string
		expectedDrive  string
		expectedRoot   string
		expectedParts  []string
		expectedName   string
	}{
		{
			name:           "drive_absolute",
			input:          `C:\a\b.txt`,
			expectedString: `C:\a\b.txt`,
			expectedDrive:  "C:",
			expectedRoot:   `\`,
			expectedParts:  []string{`C:\`, "a", "b.txt"},
			expectedName:   "b.txt",
		},
		{
			name:           "forward_slashes_normalized",
			input:          "c:/x/y",
			expectedString: `c:\x\y`,
			expectedDrive:  "c:",
			expectedRoot:   `\`,
			expectedParts:  []string{`c:\`, "x", "y"},
			expectedName:   "y",
		},
		{
			name:           "unc_share",
			input:          `\\server\share\dir\f.txt`,
			expectedString: `\\server\share\dir\f.txt`,
			expectedDrive:  `\\server\share`,
			expectedRoot:   `\`,
			expectedParts:  []string{`\\server\share\`, "dir", "f.txt"},
			expectedName:   "f.txt",
		},
		{
			name:           "drive_only",
			input:          "C:",
			expectedString: "C:",
			expectedDrive:  "C:",
			expectedParts:  []string{"C:"},
		},
		{
			name:           "drive_relative",
			input:          "C:rel",
			expectedString: "C:rel",
			expectedDrive:  "C:",
			expectedParts:  []string{"C:", "rel"},
			expectedName:   "rel",
		},
		{
			name:           "rooted_without_drive",
			input:          `\a`,
			expectedString: `\a`,
			expectedRoot:   `\`,
			expectedParts:  []string{`\`, "a"},
			expectedName:   "a",
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(subtestNameTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			parsedPath := pathvalue.Windows.Parse(testCase.input)

			require.Equal(testInstance, testCase.expectedString, parsedPath.String())
			require.Equal(testInstance, testCase.expectedDrive, parsedPath.Drive())
			require.Equal(testInstance, testCase.expectedRoot, parsedPath.Root())
			require.Equal(testInstance, testCase.expectedParts, parsedPath.Parts())
			require.Equal(testInstance, testCase.expectedName, parsedPath.Name())
		})
	}
}

func TestParseJoinRules(testInstance *testing.T) {
	testCases := []struct {
		name           string
		flavor         *pathvalue.Flavor
		fragments      []string
		expectedString string
	}{
		{name: "no_fragments", flavor: pathvalue.Posix, fragments: nil, expectedString: "."},
		{name: "absolute_replaces", flavor: pathvalue.Posix, fragments: []string{"a", "/b", "c"}, expectedString: "/b/c"},
		{name: "empty_fragment_ignored", flavor: pathvalue.Posix, fragments: []string{"a", "", "b"}, expectedString: "a/b"},
		{name: "windows_root_keeps_drive", flavor: pathvalue.Windows, fragments: []string{`C:\a`, `\b`}, expectedString: `C:\b`},
		{name: "windows_foreign_drive_replaces", flavor: pathvalue.Windows, fragments: []string{`C:\a`, "D:b"}, expectedString: "D:b"},
		{name: "windows_same_drive_appends", flavor: pathvalue.Windows, fragments: []string{`C:\a`, "c:b"}, expectedString: `C:\a\b`},
		{name: "windows_anchored_replaces_relative", flavor: pathvalue.Windows, fragments: []string{"a", `C:\x`}, expectedString: `C:\x`},
		{name: "windows_drive_then_root", flavor: pathvalue.Windows, fragments: []string{"C:", "/", "a"}, expectedString: `C:\a`},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(subtestNameTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedString, testCase.flavor.Parse(testCase.fragments...).String())
		})
	}
}

func TestJoinAndJoinPath(testInstance *testing.T) {
	basePath := pathvalue.Posix.Parse("a")

	require.Equal(testInstance, "a/b/c", basePath.Join("b", "c").String())
	require.Equal(testInstance, "/r", basePath.Join("/r").String())
	require.Equal(testInstance, "a/b/c", basePath.JoinPath(pathvalue.Posix.Parse("b/c")).String())
	require.Equal(testInstance, "a", basePath.JoinPath(pathvalue.Posix.Parse("")).String())
	require.Equal(testInstance, "a", basePath.String())
}

func TestEqualityAndOrdering(testInstance *testing.T) {
	windowsUpper := pathvalue.Windows.Parse(`C:\A\b`)
	windowsLower := pathvalue.Windows.Parse("c:/a/B")

	require.True(testInstance, windowsUpper.Equal(windowsLower))
	require.Equal(testInstance, windowsUpper.Key(), windowsLower.Key())
	require.False(testInstance, pathvalue.Posix.Parse("A").Equal(pathvalue.Posix.Parse("a")))
	require.NotEqual(testInstance, pathvalue.Posix.Parse("A").Key(), pathvalue.Posix.Parse("a").Key())
	require.False(testInstance, pathvalue.Posix.Parse("a").Equal(pathvalue.Windows.Parse("a")))
	require.True(testInstance, pathvalue.Posix.Parse("a//b/").Equal(pathvalue.Posix.Parse("a/b")))

	require.Equal(testInstance, -1, pathvalue.Posix.Parse("a").Compare(pathvalue.Posix.Parse("b")))
	require.Equal(testInstance, -1, pathvalue.Posix.Parse("a").Compare(pathvalue.Posix.Parse("a/b")))
	require.Equal(testInstance, 1, pathvalue.Posix.Parse("a/b").Compare(pathvalue.Posix.Parse("a")))
	require.Equal(testInstance, 0, pathvalue.Posix.Parse("a/b").Compare(pathvalue.Posix.Parse("a/./b")))
	require.Equal(testInstance, -1, pathvalue.Posix.Parse("z").Compare(pathvalue.Windows.Parse("a")))

	seenPaths := map[string]pathvalue.Path{}
	for _, candidate := range []pathvalue.Path{windowsUpper, windowsLower, pathvalue.Windows.Parse(`C:\other`)} {
		seenPaths[candidate.Key()] = candidate
	}
	require.Len(testInstance, seenPaths, 2)
}

func TestChangeableNodeCountAndAbsolute(testInstance *testing.T) {
	testCases := []struct {
		name             string
		path             pathvalue.Path
		expectedCount    int
		expectedAbsolute bool
	}{
		{name: "posix_empty", path: pathvalue.Posix.Parse(""), expectedCount: 0},
		{name: "posix_root", path: pathvalue.Posix.Parse("/"), expectedCount: 0, expectedAbsolute: true},
		{name: "posix_single", path: pathvalue.Posix.Parse("a"), expectedCount: 1},
		{name: "posix_rooted_single", path: pathvalue.Posix.Parse("/a"), expectedCount: 1, expectedAbsolute: true},
		{name: "posix_pair", path: pathvalue.Posix.Parse("a/b"), expectedCount: 2},
		{name: "windows_drive_absolute", path: pathvalue.Windows.Parse(`C:\a\b`), expectedCount: 2, expectedAbsolute: true},
		{name: "windows_rooted_without_drive", path: pathvalue.Windows.Parse(`\a`), expectedCount: 1},
		{name: "windows_drive_relative", path: pathvalue.Windows.Parse("C:a"), expectedCount: 1},
		{name: "windows_unc", path: pathvalue.Windows.Parse(`\\server\share\a`), expectedCount: 1, expectedAbsolute: true},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(subtestNameTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedCount, testCase.path.ChangeableNodeCount())
			require.Equal(testInstance, testCase.expectedAbsolute, testCase.path.IsAbsolute())
		})
	}
}

func TestParent(testInstance *testing.T) {
	require.Equal(testInstance, "a", pathvalue.Posix.Parse("a/b").Parent().String())
	require.Equal(testInstance, "/", pathvalue.Posix.Parse("/a").Parent().String())
	require.Equal(testInstance, "/", pathvalue.Posix.Parse("/").Parent().String())
	require.Equal(testInstance, ".", pathvalue.Posix.Parse("a").Parent().String())
	require.Equal(testInstance, ".", pathvalue.Posix.Parse("").Parent().String())
}

func TestPathsAreImmutable(testInstance *testing.T) {
	originalPath := pathvalue.Posix.Parse("a/b.txt")

	exposedParts := originalPath.Parts()
	exposedParts[0] = "mutated"
	require.Equal(testInstance, "a/b.txt", originalPath.String())

	renamedPath := originalPath.MustWithStem("c")
	require.Equal(testInstance, "a/c.txt", renamedPath.String())
	require.Equal(testInstance, "a/b.txt", originalPath.String())

	pushedPath := originalPath.PushParent("x")
	require.Equal(testInstance, "a/x/b.txt", pushedPath.String())
	require.Equal(testInstance, "a/b.txt", originalPath.String())
}

func TestZeroPathIsEmptyPosixPath(testInstance *testing.T) {
	var zeroPath pathvalue.Path

	require.Same(testInstance, pathvalue.Posix, zeroPath.Flavor())
	require.True(testInstance, zeroPath.IsEmpty())
	require.Equal(testInstance, ".", zeroPath.String())
	require.True(testInstance, zeroPath.Equal(pathvalue.Posix.Parse(".")))
}

func TestMarshalText(testInstance *testing.T) {
	encoded, encodeError := pathvalue.Windows.Parse("c:/a/b").MarshalText()
	require.NoError(testInstance, encodeError)
	require.Equal(testInstance, `c:\a\b`, string(encoded))
}

func TestFlavorByName(testInstance *testing.T) {
	testCases := []struct {
		name           string
		input          string
		expectedFlavor *pathvalue.Flavor
		expectError    bool
	}{
		{name: "posix_upper", input: "POSIX", expectedFlavor: pathvalue.Posix},
		{name: "windows_padded", input: " windows ", expectedFlavor: pathvalue.Windows},
		{name: "auto", input: "auto", expectedFlavor: pathvalue.DefaultFlavor()},
		{name: "empty", input: "", expectedFlavor: pathvalue.DefaultFlavor()},
		{name: "unknown", input: "vms", expectError: true},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(subtestNameTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			resolvedFlavor, resolveError := pathvalue.FlavorByName(testCase.input)
			if testCase.expectError {
				require.Error(testInstance, resolveError)
				require.Nil(testInstance, resolvedFlavor)
				return
			}
			require.NoError(testInstance, resolveError)
			require.Same(testInstance, testCase.expectedFlavor, resolvedFlavor)
		})
	}
}

func TestDefaultFlavorFollowsHost(testInstance *testing.T) {
	expectedFlavor := pathvalue.Posix
	if runtime.GOOS == "windows" {
		expectedFlavor = pathvalue.Windows
	}

	require.Same(testInstance, expectedFlavor, pathvalue.DefaultFlavor())
	require.Same(testInstance, expectedFlavor, pathvalue.Parse("a").Flavor())
}

func TestFlavorDescriptors(testInstance *testing.T) {
	require.Equal(testInstance, "posix", pathvalue.Posix.Name())
	require.Equal(testInstance, "/", pathvalue.Posix.Separator())
	require.Empty(testInstance, pathvalue.Posix.AlternateSeparator())
	require.True(testInstance, pathvalue.Posix.CaseSensitive())

	require.Equal(testInstance, "windows", pathvalue.Windows.String())
	require.Equal(testInstance, `\`, pathvalue.Windows.Separator())
	require.Equal(testInstance, "/", pathvalue.Windows.AlternateSeparator())
	require.False(testInstance, pathvalue.Windows.CaseSensitive())
}

func nonNilParts(path pathvalue.Path) []string {
	parts := path.Parts()
	if parts == nil {
		return []string{}
	}
	return parts
}
