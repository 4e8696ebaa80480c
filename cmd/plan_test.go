package cmd

import (
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"nodebug.dev/pkg/nodebug/internal/domain"
	domainmocks "nodebug.dev/pkg/nodebug/internal/domain/mocks"
	m "nodebug.dev/pkg/nodebug/internal/model"
)

func TestPlanCmd_PassesPathsAndLibraries(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	out := newStripTestRoot(t, mockWorkflow)

	cmd := newRootCmd()
	cmd.AddCommand(newPlanCmd())
	cmd.SetOut(out)
	cmd.SetErr(out)

	mockWorkflow.On("Plan", mock.Anything, mock.MatchedBy(func(args domain.PlanArgs) bool {
		return len(args.Paths) == 1 &&
			args.Paths[0] == m.Path("./...") &&
			len(args.Libraries) == 1 &&
			args.Libraries[0] == "^debug$" &&
			args.Threads == 2 &&
			args.Reports == m.Path(".nodebug-reports")
	})).Return(nil).Once()

	cmd.SetArgs([]string{"plan", "./...", "-l", "^debug$", "-p", "2"})
	require.NoError(t, cmd.Execute())
}

func TestPlanCmd_RejectsStripOnlyFlags(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	out := newStripTestRoot(t, mockWorkflow)

	cmd := newRootCmd()
	cmd.AddCommand(newPlanCmd())
	cmd.SetOut(out)
	cmd.SetErr(out)

	cmd.SetArgs([]string{"plan", "--write"})
	require.Error(t, cmd.Execute())
}
