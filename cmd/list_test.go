package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"minitest.dev/runner/internal/domain"
	domainmocks "minitest.dev/runner/internal/domain/mocks"
)

func TestListCmd_PassesUIOptions(t *testing.T) {
	useTempLog(t)

	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newListCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	mockWorkflow.On("List", mock.Anything, domain.ListArgs{Plain: true, FieldWidth: 48}).Return(nil)

	cmd.SetArgs([]string{"list", "--plain"})
	err := cmd.Execute()
	require.NoError(t, err)
}
