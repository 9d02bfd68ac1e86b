package auth

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractToken(t *testing.T) {
	t.Run("MissingHeader", func(t *testing.T) {
		_, aerr := ExtractToken("")
		require.NotNil(t, aerr)
		assert.Equal(t, CodeHeaderMissing, aerr.Code)
		assert.Equal(t, http.StatusUnauthorized, aerr.StatusCode)
	})

	t.Run("SinglePart", func(t *testing.T) {
		_, aerr := ExtractToken("Bearer")
		require.NotNil(t, aerr)
		assert.Equal(t, CodeInvalidHeader, aerr.Code)
	})

	t.Run("TooManyParts", func(t *testing.T) {
		_, aerr := ExtractToken("Bearer abc def")
		require.NotNil(t, aerr)
		assert.Equal(t, CodeInvalidHeader, aerr.Code)
	})

	t.Run("WrongScheme", func(t *testing.T) {
		_, aerr := ExtractToken("Token abc.def.ghi")
		require.NotNil(t, aerr)
		assert.Equal(t, CodeInvalidHeader, aerr.Code)
		assert.Equal(t, http.StatusUnauthorized, aerr.StatusCode)
	})

	t.Run("Valid", func(t *testing.T) {
		token, aerr := ExtractToken("Bearer abc.def.ghi")
		require.Nil(t, aerr)
		assert.Equal(t, "abc.def.ghi", token)
	})

	t.Run("SchemeIsCaseInsensitive", func(t *testing.T) {
		for _, scheme := range []string{"bearer", "BEARER", "Bearer", "bEaReR"} {
			token, aerr := ExtractToken(scheme + " abc.def.ghi")
			require.Nil(t, aerr, "scheme %q should be accepted", scheme)
			assert.Equal(t, "abc.def.ghi", token)
		}
	})

	t.Run("TokenReturnedVerbatim", func(t *testing.T) {
		token, aerr := ExtractToken("Bearer not-even-a-jwt")
		require.Nil(t, aerr)
		assert.Equal(t, "not-even-a-jwt", token)
	})
}
