package solana

import (
	"context"
	"errors"
	"testing"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInspector(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t)
	inspector := NewInspector(client)

	assert.NotNil(t, inspector)
}

func TestManagerConfig_Borsh(t *testing.T) {
	t.Parallel()

	config := testManagerConfig(t)

	encoded, err := bin.MarshalBorsh(config)
	require.NoError(t, err)
	assert.Equal(t, configAccountDiscriminator[:], encoded[:8])

	var decoded ManagerConfig
	require.NoError(t, bin.UnmarshalBorsh(&decoded, encoded))
	assert.Equal(t, config, decoded)

	config.PendingOwner = nil
	encoded, err = bin.MarshalBorsh(config)
	require.NoError(t, err)
	decoded = ManagerConfig{}
	require.NoError(t, bin.UnmarshalBorsh(&decoded, encoded))
	assert.Nil(t, decoded.PendingOwner)
}

func TestManagerConfig_AccountLayout(t *testing.T) {
	t.Parallel()

	owner := solana.PublicKey{1}
	pending := solana.PublicKey{2}
	mint := solana.PublicKey{3}
	custody := solana.PublicKey{4}

	// account bytes laid out field by field as the program stores them
	var data []byte
	data = append(data, configAccountDiscriminator[:]...) // discriminator
	data = append(data, 254)                              // bump
	data = append(data, owner[:]...)                      // owner
	data = append(data, 1)                                // pending_owner: Some
	data = append(data, pending[:]...)                    // pending_owner value
	data = append(data, mint[:]...)                       // mint
	data = append(data, solana.TokenProgramID[:]...)      // token_program
	data = append(data, 0)                                // mode: locking
	data = append(data, 0x01, 0x00)                       // chain_id: 1
	data = append(data, 2)                                // next_transceiver_id
	data = append(data, 1)                                // threshold
	data = append(data, 0x01)                             // enabled_transceivers: bit 0 of a u128
	data = append(data, make([]byte, 15)...)              // enabled_transceivers high bytes
	data = append(data, 1)                                // paused
	data = append(data, custody[:]...)                    // custody

	var decoded ManagerConfig
	require.NoError(t, bin.NewBorshDecoder(data).Decode(&decoded))

	assert.Equal(t, ManagerConfig{
		Bump:                254,
		Owner:               owner,
		PendingOwner:        &pending,
		Mint:                mint,
		TokenProgram:        solana.TokenProgramID,
		Mode:                ModeLocking,
		ChainID:             1,
		NextTransceiverID:   2,
		Threshold:           1,
		EnabledTransceivers: [16]byte{0x01},
		Paused:              true,
		Custody:             custody,
	}, decoded)

	encoded, err := bin.MarshalBorsh(decoded)
	require.NoError(t, err)
	assert.Equal(t, data, encoded)
}

func TestInspector_GetManagerConfig(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	configPDA, err := FindConfigPDA(testProgramID)
	require.NoError(t, err)

	tests := []struct {
		name    string
		give    any
		mockErr error
		want    *ManagerConfig
		wantErr string
	}{
		{
			name: "success",
			give: testManagerConfig(t),
			want: ptrTo(testManagerConfig(t)),
		},
		{
			name: "not initialized",
			give: nil,
			want: nil,
		},
		{
			name:    "failure: rpc error",
			give:    testManagerConfig(t),
			mockErr: errors.New("rpc error"),
			wantErr: "unable to read manager config: rpc error",
		},
		{
			name:    "failure: account of another type",
			give:    struct{ Data [120]byte }{},
			wantErr: "discriminator mismatch",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client, jsonRPCClient := newTestClient(t)
			mockGetAccountInfo(t, jsonRPCClient, configPDA, tt.give, tt.mockErr)

			got, err := NewInspector(client).GetManagerConfig(ctx, testProgramID)

			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInspector_PeerAccounts(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	transceiver := testProgramID

	peerPDA, err := FindPeerPDA(testProgramID, 2)
	require.NoError(t, err)
	transceiverPeerPDA, err := FindTransceiverPeerPDA(testProgramID, 2)
	require.NoError(t, err)
	registeredPDA, err := FindRegisteredTransceiverPDA(testProgramID, transceiver)
	require.NoError(t, err)

	present := struct{ Bump uint8 }{Bump: 255}

	tests := []struct {
		name    string
		account solana.PublicKey
		give    any
		mockErr error
		check   func(*Inspector) (bool, error)
		want    bool
		wantErr string
	}{
		{
			name:    "peer set",
			account: peerPDA,
			give:    present,
			check:   func(i *Inspector) (bool, error) { return i.IsPeerSet(ctx, testProgramID, 2) },
			want:    true,
		},
		{
			name:    "peer not set",
			account: peerPDA,
			check:   func(i *Inspector) (bool, error) { return i.IsPeerSet(ctx, testProgramID, 2) },
			want:    false,
		},
		{
			name:    "transceiver peer set",
			account: transceiverPeerPDA,
			give:    present,
			check:   func(i *Inspector) (bool, error) { return i.IsTransceiverPeerSet(ctx, testProgramID, 2) },
			want:    true,
		},
		{
			name:    "transceiver registered",
			account: registeredPDA,
			give:    present,
			check: func(i *Inspector) (bool, error) {
				return i.IsTransceiverRegistered(ctx, testProgramID, transceiver)
			},
			want: true,
		},
		{
			name:    "failure: rpc error",
			account: peerPDA,
			mockErr: errors.New("rpc error"),
			check:   func(i *Inspector) (bool, error) { return i.IsPeerSet(ctx, testProgramID, 2) },
			wantErr: "unable to get account info",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client, jsonRPCClient := newTestClient(t)
			mockGetAccountInfo(t, jsonRPCClient, tt.account, tt.give, tt.mockErr)

			got, err := tt.check(NewInspector(client))

			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func testManagerConfig(t *testing.T) ManagerConfig {
	t.Helper()

	pending := solana.MustPublicKeyFromBase58("62gDM6BRLf2w1yXfmpePUTsuvbeBbu4QqdjV32wcc4UG")

	return ManagerConfig{
		Bump:                254,
		Mint:                solana.MustPublicKeyFromBase58("HzWdnV141bP1PXXce4NJ6NCJgd6jr3kMaySuevbpgwaV"),
		TokenProgram:        solana.Token2022ProgramID,
		Mode:                ModeBurning,
		ChainID:             1,
		NextTransceiverID:   1,
		Threshold:           1,
		EnabledTransceivers: [16]byte{0: 1},
		Owner:               solana.MustPublicKeyFromBase58("GYWcPzXkdzY9DJLcbFs67phqyYzmJxeEKSTtqEoo8oKz"),
		PendingOwner:        &pending,
		Paused:              false,
		Custody:             solana.MustPublicKeyFromBase58("8pPNjm5F2xGUG8q7fFwNLcDmAnMDRamEotiDZbJ5seqo"),
	}
}
