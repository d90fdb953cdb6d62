package winsign

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/togglepad/winsign/internal/testutil/fakesigntool"
)

const verifiedOutput = `Verifying: ToggleService.exe
Signature Index: 0 (Primary Signature)
Hash of file (sha256): 3C1B...

Signing Certificate Chain:
    Issued to: Toggle Software, Inc.

Successfully verified: ToggleService.exe

Number of files successfully Verified: 1
Number of warnings: 0
Number of errors: 0
`

func TestVerify(t *testing.T) {
	t.Parallel()

	runner := fakesigntool.New(fakesigntool.Response{Output: verifiedOutput})
	client := newTestClient(t, runner)

	res, err := client.Verify(context.Background(), "ToggleService.exe")
	require.NoError(t, err)

	calls := runner.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "/fake/signtool", calls[0].Path)
	assert.Equal(t, []string{"verify", "/pa", "/v", "ToggleService.exe"}, calls[0].Args)

	assert.Equal(t, "ToggleService.exe", res.Target)
	assert.Equal(t, 1, res.Signatures)
	assert.Contains(t, string(res.Output), "Successfully verified")
}

func TestVerifyAllSignatures(t *testing.T) {
	t.Parallel()

	runner := fakesigntool.New(fakesigntool.Response{Output: verifiedOutput})
	client := newTestClient(t, runner)

	_, err := client.Verify(context.Background(), "ToggleService.exe", WithAllSignatures())
	require.NoError(t, err)

	calls := runner.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, []string{"verify", "/pa", "/v", "/all", "ToggleService.exe"}, calls[0].Args)
}

func TestVerifyExtraArgs(t *testing.T) {
	t.Parallel()

	runner := fakesigntool.New(fakesigntool.Response{Output: verifiedOutput})
	client := newTestClient(t, runner, WithExtraArgs("/d"))

	_, err := client.Verify(context.Background(), "ToggleService.exe")
	require.NoError(t, err)

	calls := runner.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, []string{"verify", "/pa", "/v", "/d", "ToggleService.exe"}, calls[0].Args)
}

func TestVerifyUnsigned(t *testing.T) {
	t.Parallel()

	runner := fakesigntool.New(fakesigntool.Response{
		Output:   "SignTool Error: No signature found.\nNumber of errors: 1\n",
		ExitCode: 1,
	})
	client := newTestClient(t, runner)

	_, err := client.Verify(context.Background(), "unsigned.exe")
	assert.ErrorIs(t, err, ErrNoSignature)

	var toolErr *ToolError
	require.ErrorAs(t, err, &toolErr)
	assert.Equal(t, 1, toolErr.ExitCode())
	assert.Contains(t, string(toolErr.Invocation.Output), "No signature found")
}

func TestVerifyUntrusted(t *testing.T) {
	t.Parallel()

	runner := fakesigntool.New(fakesigntool.Response{
		Output:   "SignTool Error: A certificate chain processed, but terminated in a root certificate which is not trusted by the trust provider.\n",
		ExitCode: 1,
	})
	client := newTestClient(t, runner)

	_, err := client.Verify(context.Background(), "selfsigned.exe")
	assert.ErrorIs(t, err, ErrVerifyFailed)
	assert.NotErrorIs(t, err, ErrNoSignature)
}

func TestVerifyEmptyTarget(t *testing.T) {
	t.Parallel()

	runner := fakesigntool.New()
	client := newTestClient(t, runner)

	_, err := client.Verify(context.Background(), "")
	assert.ErrorIs(t, err, ErrNoTarget)
	assert.Empty(t, runner.Calls())
}
