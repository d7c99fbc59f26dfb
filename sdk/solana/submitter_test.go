package solana

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
	chainsel "github.com/smartcontractkit/chain-selectors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	sdkerrors "github.com/smartcontractkit/ntt-setup/sdk/errors"
	"github.com/smartcontractkit/ntt-setup/sdk/solana/mocks"
	"github.com/smartcontractkit/ntt-setup/types"
)

func TestNewSubmitter(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t)
	auth := randomPrivateKey(t)

	submitter := NewSubmitter(testChainSelector, client, auth,
		WithCommitment(rpc.CommitmentFinalized),
		WithConfirmationTimeout(time.Minute),
		WithPollInterval(time.Millisecond),
	)

	assert.Equal(t, testChainSelector, submitter.ChainSelector())
	assert.Equal(t, rpc.CommitmentFinalized, submitter.commitment)
	assert.Equal(t, time.Minute, submitter.confirmationTimeout)
	assert.Equal(t, time.Millisecond, submitter.pollInterval)
}

func TestSubmitter_Submit(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	auth := randomPrivateKey(t)

	tests := []struct {
		name      string
		setup     func(t *testing.T, client *mocks.JSONRPCClient)
		batch     func(t *testing.T) []types.Transaction
		wantHash  string
		assertErr func(t *testing.T, err error)
	}{
		{
			name: "success",
			setup: func(t *testing.T, m *mocks.JSONRPCClient) {
				t.Helper()
				mockGetLatestBlockhash(t, m, nil)
				mockSendTransaction(t, m, nil)
				mockSignatureStatus(t, m, rpc.ConfirmationStatusProcessed, nil).Once()
				mockSignatureStatus(t, m, rpc.ConfirmationStatusConfirmed, nil).Once()
			},
			wantHash: testSignature,
		},
		{
			name: "failure: empty batch",
			setup: func(t *testing.T, _ *mocks.JSONRPCClient) {
				t.Helper()
			},
			batch: func(t *testing.T) []types.Transaction {
				t.Helper()
				return nil
			},
			assertErr: func(t *testing.T, err error) {
				t.Helper()
				require.ErrorIs(t, err, sdkerrors.ErrEmptyBatch)
			},
		},
		{
			name: "failure: transaction for another chain",
			setup: func(t *testing.T, _ *mocks.JSONRPCClient) {
				t.Helper()
			},
			batch: func(t *testing.T) []types.Transaction {
				t.Helper()
				tx := testInstructionTransaction(t, auth.PublicKey())
				tx.ChainSelector = types.ChainSelector(chainsel.ETHEREUM_TESTNET_SEPOLIA.Selector)

				return []types.Transaction{tx}
			},
			assertErr: func(t *testing.T, err error) {
				t.Helper()
				var mismatch *sdkerrors.ChainMismatchError
				require.ErrorAs(t, err, &mismatch)
			},
		},
		{
			name: "failure: latest blockhash unavailable",
			setup: func(t *testing.T, m *mocks.JSONRPCClient) {
				t.Helper()
				mockGetLatestBlockhash(t, m, errors.New("connection refused"))
			},
			assertErr: func(t *testing.T, err error) {
				t.Helper()
				var unavailable *sdkerrors.NetworkUnavailableError
				require.ErrorAs(t, err, &unavailable)
				require.ErrorContains(t, err, "connection refused")
			},
		},
		{
			name: "failure: preflight rejected",
			setup: func(t *testing.T, m *mocks.JSONRPCClient) {
				t.Helper()
				mockGetLatestBlockhash(t, m, nil)
				mockSendTransaction(t, m, &jsonrpc.RPCError{
					Code:    -32002,
					Message: "Transaction simulation failed: custom program error: 0x0",
				})
			},
			assertErr: func(t *testing.T, err error) {
				t.Helper()
				var rejected *sdkerrors.SubmissionRejectedError
				require.ErrorAs(t, err, &rejected)
				assert.Empty(t, rejected.Hash)
			},
		},
		{
			name: "failure: send transport error",
			setup: func(t *testing.T, m *mocks.JSONRPCClient) {
				t.Helper()
				mockGetLatestBlockhash(t, m, nil)
				mockSendTransaction(t, m, errors.New("i/o timeout"))
			},
			assertErr: func(t *testing.T, err error) {
				t.Helper()
				var unavailable *sdkerrors.NetworkUnavailableError
				require.ErrorAs(t, err, &unavailable)
			},
		},
		{
			name: "failure: transaction failed on chain",
			setup: func(t *testing.T, m *mocks.JSONRPCClient) {
				t.Helper()
				mockGetLatestBlockhash(t, m, nil)
				mockSendTransaction(t, m, nil)
				mockSignatureStatus(t, m, rpc.ConfirmationStatusConfirmed,
					map[string]any{"InstructionError": []any{0, "InvalidAccountData"}}).Once()
			},
			assertErr: func(t *testing.T, err error) {
				t.Helper()
				var rejected *sdkerrors.SubmissionRejectedError
				require.ErrorAs(t, err, &rejected)
				assert.Equal(t, testSignature, rejected.Hash)
			},
		},
		{
			name: "failure: confirmation timeout",
			setup: func(t *testing.T, m *mocks.JSONRPCClient) {
				t.Helper()
				mockGetLatestBlockhash(t, m, nil)
				mockSendTransaction(t, m, nil)
				mockSignatureStatus(t, m, rpc.ConfirmationStatusProcessed, nil)
			},
			assertErr: func(t *testing.T, err error) {
				t.Helper()
				var timeout *sdkerrors.ConfirmationTimeoutError
				require.ErrorAs(t, err, &timeout)
				assert.Equal(t, testSignature, timeout.Hash)
				assert.Equal(t, testChainSelector, timeout.ChainSelector)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client, jsonRPCClient := newTestClient(t)
			tt.setup(t, jsonRPCClient)

			batch := []types.Transaction{testInstructionTransaction(t, auth.PublicKey())}
			if tt.batch != nil {
				batch = tt.batch(t)
			}

			submitter := NewSubmitter(testChainSelector, client, auth,
				WithConfirmationTimeout(50*time.Millisecond),
				WithPollInterval(5*time.Millisecond),
			)
			got, err := submitter.Submit(ctx, batch)

			if tt.assertErr != nil {
				tt.assertErr(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantHash, got.Hash)
			assert.Equal(t, chainsel.FamilySolana, got.ChainFamily)
		})
	}
}

func TestSubmitter_Submit_Interrupted(t *testing.T) {
	t.Parallel()

	auth := randomPrivateKey(t)
	client, jsonRPCClient := newTestClient(t)
	mockGetLatestBlockhash(t, jsonRPCClient, nil)
	mockSendTransaction(t, jsonRPCClient, nil)
	mockSignatureStatus(t, jsonRPCClient, rpc.ConfirmationStatusProcessed, nil)

	ctx, cancel := context.WithCancel(context.Background())
	submitter := NewSubmitter(testChainSelector, client, auth,
		WithConfirmationTimeout(time.Minute),
		WithPollInterval(5*time.Millisecond),
	)

	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := submitter.Submit(ctx, []types.Transaction{testInstructionTransaction(t, auth.PublicKey())})
	require.ErrorIs(t, err, context.Canceled)

	var timeout *sdkerrors.ConfirmationTimeoutError
	assert.False(t, errors.As(err, &timeout))
}

func TestSubmitter_Submit_EphemeralSigners(t *testing.T) {
	t.Parallel()

	auth := randomPrivateKey(t)
	client, jsonRPCClient := newTestClient(t)
	mockGetLatestBlockhash(t, jsonRPCClient, nil)
	mockSignatureStatus(t, jsonRPCClient, rpc.ConfirmationStatusConfirmed, nil).Once()

	var sent *solana.Transaction
	jsonRPCClient.EXPECT().CallForInto(anyContext, mock.Anything, "sendTransaction", sendTransactionParams(t)).
		RunAndReturn(func(_ context.Context, output any, _ string, params []any) error {
			encoded, ok := params[0].(string)
			require.True(t, ok)

			var err error
			sent, err = solana.TransactionFromBase64(encoded)
			require.NoError(t, err)

			result, ok := output.(*solana.Signature)
			require.True(t, ok)
			*result = solana.MustSignatureFromBase58(testSignature)

			return nil
		}).Once()

	broadcast, ephemeral, err := NewBroadcastWormholePeerInstruction(testProgramID, CoreBridgeTestnet, auth.PublicKey(), 2)
	require.NoError(t, err)
	broadcastTx, err := NewTransactionWithEphemeralSigners(testChainSelector, broadcast, ephemeral, "NttManager", nil)
	require.NoError(t, err)

	submitter := NewSubmitter(testChainSelector, client, auth, WithPollInterval(time.Millisecond))
	got, err := submitter.Submit(context.Background(), []types.Transaction{
		testInstructionTransaction(t, auth.PublicKey()),
		broadcastTx,
	})
	require.NoError(t, err)
	assert.Equal(t, testSignature, got.Hash)

	require.NotNil(t, sent)
	require.NoError(t, sent.VerifySignatures())
	signers := sent.Message.Signers()
	require.Len(t, signers, 2)
	assert.Equal(t, auth.PublicKey(), signers[0])
	assert.False(t, signers[1].IsZero())
	assert.Len(t, sent.Message.Instructions, 2)
}

func TestCommitmentReached(t *testing.T) {
	t.Parallel()

	assert.True(t, commitmentReached(rpc.ConfirmationStatusFinalized, rpc.CommitmentConfirmed))
	assert.True(t, commitmentReached(rpc.ConfirmationStatusConfirmed, rpc.CommitmentConfirmed))
	assert.False(t, commitmentReached(rpc.ConfirmationStatusProcessed, rpc.CommitmentConfirmed))
	assert.False(t, commitmentReached(rpc.ConfirmationStatusConfirmed, rpc.CommitmentFinalized))
	assert.False(t, commitmentReached("", rpc.CommitmentProcessed))
}
