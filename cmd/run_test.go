package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"minitest.dev/runner/internal/domain"
	domainmocks "minitest.dev/runner/internal/domain/mocks"
	m "minitest.dev/runner/internal/model"
)

func TestRunCmd_Defaults(t *testing.T) {
	useTempLog(t)

	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newRunCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	mockWorkflow.On("Run", mock.Anything, domain.RunArgs{
		Output:     m.Path(".minitest"),
		Plain:      false,
		FieldWidth: 48,
		Metrics:    false,
	}).Return(nil)

	cmd.SetArgs([]string{"run"})
	err := cmd.Execute()
	require.NoError(t, err)

	mockWorkflow.AssertExpectations(t)
}

func TestRunCmd_FlagsArePassedThrough(t *testing.T) {
	useTempLog(t)

	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newRunCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	mockWorkflow.On("Run", mock.Anything, mock.MatchedBy(func(args domain.RunArgs) bool {
		return args.Output == m.Path("./out") &&
			args.Plain &&
			args.FieldWidth == 30 &&
			args.Metrics
	})).Return(nil)

	cmd.SetArgs([]string{"run", "-o", "./out", "--plain", "--field-width", "30", "--metrics"})
	err := cmd.Execute()
	require.NoError(t, err)
}

func TestRunCmd_FailingTestsReturnError(t *testing.T) {
	useTempLog(t)

	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newRunCmd())
	cmd.SetOut(&bytes.Buffer{})
	errOut := &bytes.Buffer{}
	cmd.SetErr(errOut)

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	mockWorkflow.On("Run", mock.Anything, mock.Anything).Return(domain.ErrTestsFailed)

	cmd.SetArgs([]string{"run"})
	err := cmd.Execute()
	require.ErrorIs(t, err, domain.ErrTestsFailed)
	assert.Contains(t, errOut.String(), "tests failed")
}

func TestRunCmd_PositionalArgsAreRejected(t *testing.T) {
	useTempLog(t)

	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newRunCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	cmd.SetArgs([]string{"run", "./..."})
	err := cmd.Execute()
	require.Error(t, err)
}
