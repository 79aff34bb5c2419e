package application

import (
	"testing"

	"github.com/stretchr/testify/require"

	"thirdcoast.systems/clipstudio/internal/config"
)

const testKeyHex = "0000000000000000000000000000000000000000000000000000000000000000"

func TestInitEncryptionManager_DefaultCipher(t *testing.T) {
	mgr, err := InitEncryptionManager(&config.Config{EncryptionKey: testKeyHex})
	require.NoError(t, err)
	require.NotNil(t, mgr)
}

func TestInitEncryptionManager_EphemeralKey(t *testing.T) {
	mgr, err := InitEncryptionManager(&config.Config{})
	require.NoError(t, err)
	require.NotNil(t, mgr)

	encoded, err := mgr.EncryptString("token")
	require.NoError(t, err)
	got, err := mgr.DecryptString(encoded)
	require.NoError(t, err)
	require.Equal(t, "token", got)
}

func TestInitEncryptionManager_SpecificCiphers(t *testing.T) {
	for _, cipher := range []string{"chacha20-poly1305", "xchacha20-poly1305"} {
		t.Run(cipher, func(t *testing.T) {
			mgr, err := InitEncryptionManager(&config.Config{
				EncryptionKey:    testKeyHex,
				EncryptionCipher: cipher,
			})
			require.NoError(t, err)
			require.NotNil(t, mgr)
		})
	}
}

func TestInitEncryptionManager_Errors(t *testing.T) {
	t.Run("invalid hex", func(t *testing.T) {
		_, err := InitEncryptionManager(&config.Config{EncryptionKey: "not-hex"})
		require.Error(t, err)
	})

	t.Run("wrong length", func(t *testing.T) {
		_, err := InitEncryptionManager(&config.Config{EncryptionKey: "deadbeef"})
		require.Error(t, err)
	})

	t.Run("unsupported cipher", func(t *testing.T) {
		_, err := InitEncryptionManager(&config.Config{
			EncryptionKey:    testKeyHex,
			EncryptionCipher: "totally-not-a-cipher",
		})
		require.Error(t, err)
	})
}
