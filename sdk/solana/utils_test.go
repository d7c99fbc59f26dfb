package solana

import (
	"context"
	"testing"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	chainsel "github.com/smartcontractkit/chain-selectors"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/smartcontractkit/ntt-setup/sdk/solana/mocks"
	"github.com/smartcontractkit/ntt-setup/types"
)

const testSignature = "3Kp5n9Ye69MNAeUEiw77QCMR2c5csEUxr3opSUzFJM7dFRf5jUYNufbb4B1caQehD1wGrP3yGCo5N7V9W96CQzAH"

var (
	testChainSelector = types.ChainSelector(chainsel.SOLANA_DEVNET.Selector)
	testProgramID     = solana.MustPublicKeyFromBase58("6UmMZr5MEqiKWD5jqTJd1WCR5kT8oZuFYBLJFi1o6GQX")
	anyContext        = mock.MatchedBy(func(_ context.Context) bool { return true })
)

func newTestClient(t *testing.T) (*rpc.Client, *mocks.JSONRPCClient) {
	t.Helper()

	jsonRPCClient := mocks.NewJSONRPCClient(t)

	return rpc.NewWithCustomRPCClient(jsonRPCClient), jsonRPCClient
}

func mockGetAccountInfo(
	t *testing.T, client *mocks.JSONRPCClient, account solana.PublicKey, accountInfo any, mockError error,
) {
	t.Helper()

	client.EXPECT().CallForInto(anyContext, mock.Anything, "getAccountInfo", []any{
		account, rpc.M{"commitment": rpc.CommitmentConfirmed, "encoding": solana.EncodingBase64},
	},
	).RunAndReturn(func(_ context.Context, output any, _ string, _ []any) error {
		result, ok := output.(**rpc.GetAccountInfoResult)
		require.True(t, ok)

		if mockError != nil {
			return mockError
		}
		if accountInfo == nil {
			*result = &rpc.GetAccountInfoResult{Value: nil}

			return nil
		}

		data, err := bin.MarshalBorsh(accountInfo)
		require.NoError(t, err)

		*result = &rpc.GetAccountInfoResult{Value: &rpc.Account{Data: rpc.DataBytesOrJSONFromBytes(data)}}

		return nil
	}).Once()
}

func mockGetLatestBlockhash(t *testing.T, client *mocks.JSONRPCClient, mockError error) {
	t.Helper()

	client.EXPECT().CallForInto(
		anyContext, mock.Anything, "getLatestBlockhash", []any{rpc.M{"commitment": rpc.CommitmentFinalized}},
	).RunAndReturn(func(_ context.Context, output any, _ string, _ []any) error {
		result, ok := output.(**rpc.GetLatestBlockhashResult)
		require.True(t, ok)

		*result = &rpc.GetLatestBlockhashResult{Value: &rpc.LatestBlockhashResult{
			Blockhash:            solana.MustHashFromBase58(randomPublicKey(t).String()),
			LastValidBlockHeight: 100,
		}}

		return mockError
	}).Once()
}

func mockSendTransaction(t *testing.T, client *mocks.JSONRPCClient, mockError error) {
	t.Helper()

	client.EXPECT().CallForInto(
		anyContext, mock.Anything, "sendTransaction", sendTransactionParams(t),
	).RunAndReturn(func(_ context.Context, output any, _ string, _ []any) error {
		result, ok := output.(*solana.Signature)
		require.True(t, ok)

		if mockError != nil {
			return mockError
		}
		*result = solana.MustSignatureFromBase58(testSignature)

		return nil
	}).Once()
}

// mockSignatureStatus answers every getSignatureStatuses call with the given status.
func mockSignatureStatus(
	t *testing.T, client *mocks.JSONRPCClient, status rpc.ConfirmationStatusType, txErr any,
) *mock.Call {
	t.Helper()

	return client.EXPECT().CallForInto(
		anyContext, mock.Anything, "getSignatureStatuses", mock.Anything,
	).RunAndReturn(func(_ context.Context, output any, _ string, _ []any) error {
		result, ok := output.(**rpc.GetSignatureStatusesResult)
		require.True(t, ok)

		*result = &rpc.GetSignatureStatusesResult{
			Value: []*rpc.SignatureStatusesResult{{
				Slot:               42,
				ConfirmationStatus: status,
				Err:                txErr,
			}},
		}

		return nil
	}).Call
}

var sendTransactionParams = func(t *testing.T) any {
	t.Helper()

	return mock.MatchedBy(func(args []any) bool {
		if len(args) == 1 {
			_, isMap := args[0].(rpc.M)

			return isMap
		}
		if len(args) == 2 {
			_, isString := args[0].(string)
			_, isMap := args[1].(rpc.M)

			return isString && isMap
		}

		return false
	})
}

func randomPublicKey(t *testing.T) solana.PublicKey {
	t.Helper()
	privKey, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)

	return privKey.PublicKey()
}

func randomPrivateKey(t *testing.T) solana.PrivateKey {
	t.Helper()
	privKey, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)

	return privKey
}

func testInstructionTransaction(t *testing.T, payer solana.PublicKey) types.Transaction {
	t.Helper()

	ix, err := NewSetWormholePeerInstruction(testProgramID, payer, payer, 2, [32]byte{31: 1})
	require.NoError(t, err)
	tx, err := NewTransactionFromInstruction(testChainSelector, ix, "NttManager", []string{"set-transceiver-peer"})
	require.NoError(t, err)

	return tx
}

func ptrTo[T any](value T) *T { return &value }
