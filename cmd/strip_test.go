package cmd

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"nodebug.dev/pkg/nodebug/internal/domain"
	domainmocks "nodebug.dev/pkg/nodebug/internal/domain/mocks"
	m "nodebug.dev/pkg/nodebug/internal/model"
)

// restoreFlagBindings rebinds every config key touched by strip and plan to
// unchanged flags so values set in one test do not leak into the next.
func restoreFlagBindings(t *testing.T) {
	t.Helper()

	t.Cleanup(func() {
		fs := pflag.NewFlagSet("restore", pflag.ContinueOnError)
		fs.String(outputFlagName, defaultReportsDir, "")
		fs.StringArray(excludeFlagName, []string{}, "")
		fs.StringArray(libraryFlagName, []string{}, "")
		fs.Int(stripParallelFlagName, defaultStripParallel, "")
		fs.Bool(stripWriteFlagName, defaultStripWrite, "")
		fs.String(stripOutDirFlagName, "", "")

		for flag, key := range map[string]string{
			outputFlagName:        outputFlagName,
			excludeFlagName:       excludeConfigKey,
			libraryFlagName:       librariesConfigKey,
			stripParallelFlagName: stripParallelConfigKey,
			stripWriteFlagName:    stripWriteConfigKey,
			stripOutDirFlagName:   stripOutDirConfigKey,
		} {
			require.NoError(t, viper.BindPFlag(key, fs.Lookup(flag)))
		}
	})
}

func newStripTestRoot(t *testing.T, mockWorkflow domain.Workflow) *bytes.Buffer {
	t.Helper()
	restoreFlagBindings(t)

	originalWorkflow := workflow
	workflow = mockWorkflow

	t.Cleanup(func() { workflow = originalWorkflow })

	return &bytes.Buffer{}
}

func TestStripCmd_Defaults(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	out := newStripTestRoot(t, mockWorkflow)

	cmd := newRootCmd()
	cmd.AddCommand(newStripCmd())
	cmd.SetOut(out)
	cmd.SetErr(out)

	mockWorkflow.On("Strip", mock.Anything, mock.MatchedBy(func(args domain.StripArgs) bool {
		return len(args.Paths) == 0 &&
			!args.Write &&
			args.OutDir == "" &&
			args.Threads == 1 &&
			len(args.Libraries) == 0 &&
			args.Reports == m.Path(".nodebug-reports")
	})).Return(nil).Once()

	cmd.SetArgs([]string{"strip"})
	require.NoError(t, cmd.Execute())
}

func TestStripCmd_FlagsArePassedThrough(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	out := newStripTestRoot(t, mockWorkflow)

	cmd := newRootCmd()
	cmd.AddCommand(newStripCmd())
	cmd.SetOut(out)
	cmd.SetErr(out)

	mockWorkflow.EXPECT().Strip(mock.Anything, mock.Anything).
		Run(func(_ context.Context, args domain.StripArgs) {
			assert.Equal(t, []m.Path{"./src/...", "lib/a.js"}, args.Paths)
			assert.True(t, args.Write)
			assert.Equal(t, 4, args.Threads)
			assert.Equal(t, []string{"^debug$", "^debug/"}, args.Libraries)
			assert.Equal(t, []string{"_test\\.js$"}, args.Exclude)
			assert.Equal(t, m.Path("./reports"), args.Reports)
		}).
		Return(nil).Once()

	cmd.SetArgs([]string{
		"strip", "./src/...", "lib/a.js",
		"-w", "-p", "4",
		"-l", "^debug$", "--library", "^debug/",
		"-x", "_test\\.js$",
		"-o", "./reports",
	})
	require.NoError(t, cmd.Execute())
}

func TestStripCmd_OutDir(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	out := newStripTestRoot(t, mockWorkflow)

	cmd := newRootCmd()
	cmd.AddCommand(newStripCmd())
	cmd.SetOut(out)
	cmd.SetErr(out)

	mockWorkflow.On("Strip", mock.Anything, mock.MatchedBy(func(args domain.StripArgs) bool {
		return args.OutDir == m.Path("./dist") && !args.Write
	})).Return(nil).Once()

	cmd.SetArgs([]string{"strip", "--out-dir", "./dist"})
	require.NoError(t, cmd.Execute())
}

func TestStripCmd_WriteAndOutDirConflict(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	out := newStripTestRoot(t, mockWorkflow)

	cmd := newRootCmd()
	cmd.AddCommand(newStripCmd())
	cmd.SetOut(out)
	cmd.SetErr(out)

	cmd.SetArgs([]string{"strip", "--write", "--out-dir", "./dist"})
	err := cmd.Execute()
	require.ErrorIs(t, err, errWriteAndOutDir)
}

func TestStripCmd_PropagatesWorkflowError(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	out := newStripTestRoot(t, mockWorkflow)

	cmd := newRootCmd()
	cmd.AddCommand(newStripCmd())
	cmd.SetOut(out)
	cmd.SetErr(out)

	boom := errors.New("boom")
	mockWorkflow.EXPECT().Strip(mock.Anything, mock.Anything).Return(boom).Once()

	cmd.SetArgs([]string{"strip"})
	require.ErrorIs(t, cmd.Execute(), boom)
}
