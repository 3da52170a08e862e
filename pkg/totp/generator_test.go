package totp_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"github.com/pquerna/otp"
	pqtotp "github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authenticator/pkg/totp"
)

// Base32 of the RFC 6238 SHA-1 seed "12345678901234567890".
const rfcSecret = "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ"

var codePattern = regexp.MustCompile(`^[0-9]{6}$`)

func engines(t *testing.T) map[string]*totp.Generator {
	t.Helper()

	out := make(map[string]*totp.Generator)
	for name, mac := range map[string]totp.MAC{"native": totp.NativeMAC{}, "software": totp.SoftMAC{}} {
		g, err := totp.New(totp.WithMAC(mac))
		require.NoError(t, err)
		out[name] = g
	}
	return out
}

func referenceCode(t *testing.T, secret string, at time.Time) string {
	t.Helper()
	code, err := pqtotp.GenerateCodeCustom(secret, at, pqtotp.ValidateOpts{
		Period:    totp.Period,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	require.NoError(t, err)
	return code
}

func TestGenerator_RFC6238Vectors(t *testing.T) {
	t.Parallel()

	// RFC 6238 appendix B, SHA-1 column, last six digits.
	tests := []struct {
		unix int64
		want string
	}{
		{59, "287082"},
		{1111111109, "081804"},
		{1111111111, "050471"},
		{1234567890, "005924"},
		{2000000000, "279037"},
		{20000000000, "353130"},
	}

	ctx := context.Background()
	for name, g := range engines(t) {
		for _, tt := range tests {
			code, err := g.GenerateAt(ctx, rfcSecret, time.Unix(tt.unix, 0))
			require.NoError(t, err, "%s at %d", name, tt.unix)
			assert.Equal(t, tt.want, code, "%s at %d", name, tt.unix)
		}
	}
}

func TestGenerator_KnownAnswer(t *testing.T) {
	t.Parallel()

	at := time.Unix(59, 0)
	want := referenceCode(t, "JBSWY3DPEHPK3PXP", at)
	assert.Equal(t, "996554", want)

	for name, g := range engines(t) {
		code, err := g.GenerateAt(context.Background(), "JBSWY3DPEHPK3PXP", at)
		require.NoError(t, err, name)
		assert.Equal(t, want, code, name)
	}
}

func TestGenerator_MatchesReference(t *testing.T) {
	t.Parallel()

	secrets := []string{
		"JBSWY3DPEHPK3PXP",
		rfcSecret,
		"ABCDEFGHIJKLMNOPQRSTUVWXYZ234567",
		"MFRGGZDFMZTWQ2LKNNWG23TPOBYXE43UOV3HO6DZPIZDGNBVGY3Q",
	}

	g, err := totp.New(totp.WithMAC(totp.SoftMAC{}))
	require.NoError(t, err)

	for _, secret := range secrets {
		for u := int64(0); u < 3600; u += 97 {
			at := time.Unix(1700000000+u, 0)
			code, err := g.GenerateAt(context.Background(), secret, at)
			require.NoError(t, err)
			assert.Equal(t, referenceCode(t, secret, at), code, "%s at %d", secret, at.Unix())
		}
	}
}

func TestGenerator_NormalizesSecret(t *testing.T) {
	t.Parallel()

	g, err := totp.New()
	require.NoError(t, err)

	at := time.Unix(59, 0)
	want, err := g.GenerateAt(context.Background(), "JBSWY3DPEHPK3PXP", at)
	require.NoError(t, err)

	for _, in := range []string{"jbswy3dpehpk3pxp", "JBSW Y3DP EHPK 3PXP", "jbsw-y3dp-ehpk-3pxp", "JBSWY3DPEHPK3PXP===="} {
		got, err := g.GenerateAt(context.Background(), in, at)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestGenerator_Deterministic(t *testing.T) {
	t.Parallel()

	g, err := totp.New()
	require.NoError(t, err)

	at := time.Unix(1700000123, 0)
	first, err := g.GenerateAt(context.Background(), "JBSWY3DPEHPK3PXP", at)
	require.NoError(t, err)
	second, err := g.GenerateAt(context.Background(), "JBSWY3DPEHPK3PXP", at)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	sameWindow, err := g.GenerateAt(context.Background(), "JBSWY3DPEHPK3PXP", at.Add(5*time.Second))
	require.NoError(t, err)
	assert.Equal(t, first, sameWindow)
}

func TestGenerator_CodeFormat(t *testing.T) {
	t.Parallel()

	g, err := totp.New()
	require.NoError(t, err)

	secrets := []string{"JBSWY3DPEHPK3PXP", "abcdefghijklmnop", rfcSecret, "AAAAAAAAAAAAAAAA"}
	for _, secret := range secrets {
		require.True(t, totp.ValidateSecret(secret))
		for u := int64(0); u < 100*totp.Period; u += totp.Period {
			code, err := g.GenerateAt(context.Background(), secret, time.Unix(u, 0))
			require.NoError(t, err)
			assert.Regexp(t, codePattern, code)
		}
	}
}

func TestGenerator_Errors(t *testing.T) {
	t.Parallel()

	g, err := totp.New()
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("invalid character", func(t *testing.T) {
		t.Parallel()
		code, err := g.GenerateAt(ctx, "JBSWY3DPEHPK3PX8", time.Unix(59, 0))
		assert.Empty(t, code)
		assert.ErrorIs(t, err, totp.ErrGenerationFailed)
		assert.ErrorIs(t, err, totp.ErrInvalidCharacter)

		var de *totp.DecodeError
		require.True(t, errors.As(err, &de))
		assert.Equal(t, '8', de.Char)
	})

	t.Run("pre-epoch timestamp", func(t *testing.T) {
		t.Parallel()
		code, err := g.GenerateAt(ctx, "JBSWY3DPEHPK3PXP", time.Unix(-1, 0))
		assert.Empty(t, code)
		assert.ErrorIs(t, err, totp.ErrGenerationFailed)
		assert.ErrorIs(t, err, totp.ErrInvalidTimestamp)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		code, err := g.GenerateAt(cctx, "JBSWY3DPEHPK3PXP", time.Unix(59, 0))
		assert.Empty(t, code)
		assert.ErrorIs(t, err, totp.ErrGenerationFailed)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("short secret is decoded in lenient mode", func(t *testing.T) {
		t.Parallel()
		code, err := g.GenerateAt(ctx, "JBSWY3DP", time.Unix(59, 0))
		require.NoError(t, err)
		assert.Regexp(t, codePattern, code)
	})
}

func TestGenerator_StrictSecrets(t *testing.T) {
	t.Parallel()

	g, err := totp.New(totp.WithStrictSecrets())
	require.NoError(t, err)

	code, err := g.GenerateAt(context.Background(), "JBSWY3DP", time.Unix(59, 0))
	assert.Empty(t, code)
	assert.ErrorIs(t, err, totp.ErrGenerationFailed)
	assert.ErrorIs(t, err, totp.ErrMalformedSecret)

	code, err = g.GenerateAt(context.Background(), "JBSWY3DPEHPK3PXP", time.Unix(59, 0))
	require.NoError(t, err)
	assert.Equal(t, "996554", code)
}

func TestGenerator_Clock(t *testing.T) {
	t.Parallel()

	fixed := time.Unix(1111111109, 0)
	g, err := totp.New(totp.WithClock(func() time.Time { return fixed }))
	require.NoError(t, err)

	code, err := g.Generate(context.Background(), rfcSecret)
	require.NoError(t, err)
	assert.Equal(t, "081804", code)
	assert.Equal(t, 1, g.RemainingSeconds())
	assert.Equal(t, fixed, g.Now())
}

func TestGenerator_Async(t *testing.T) {
	t.Parallel()

	g, err := totp.New()
	require.NoError(t, err)

	code, err := g.GenerateAsync(context.Background(), rfcSecret, time.Unix(59, 0)).Await()
	require.NoError(t, err)
	assert.Equal(t, "287082", code)

	_, err = g.GenerateAsync(context.Background(), "!!!!", time.Unix(59, 0)).AwaitWithTimeout(time.Second)
	assert.ErrorIs(t, err, totp.ErrInvalidCharacter)
}

func TestGenerator_LogsFailureWithoutSecret(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	g, err := totp.New(totp.WithLogger(log))
	require.NoError(t, err)

	_, err = g.GenerateAt(context.Background(), "SECRETVALUE8", time.Unix(59, 0))
	require.Error(t, err)
	assert.Contains(t, buf.String(), "totp generation failed")
	assert.NotContains(t, buf.String(), "SECRETVALUE")
}

func TestNew_NilOptions(t *testing.T) {
	t.Parallel()

	_, err := totp.New(totp.WithMAC(nil))
	assert.ErrorIs(t, err, totp.ErrNilMAC)

	_, err = totp.New(totp.WithLogger(nil))
	assert.ErrorIs(t, err, totp.ErrNilLogger)

	_, err = totp.New(totp.WithClock(nil))
	assert.ErrorIs(t, err, totp.ErrNilClock)
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		g, err := totp.NewFromConfig(totp.DefaultConfig())
		require.NoError(t, err)

		code, err := g.GenerateAt(context.Background(), rfcSecret, time.Unix(59, 0))
		require.NoError(t, err)
		assert.Equal(t, "287082", code)
	})

	t.Run("software strict", func(t *testing.T) {
		t.Parallel()
		g, err := totp.NewFromConfig(totp.Config{Engine: totp.EngineSoftware, StrictSecrets: true})
		require.NoError(t, err)

		_, err = g.GenerateAt(context.Background(), "JBSWY3DP", time.Unix(59, 0))
		assert.ErrorIs(t, err, totp.ErrMalformedSecret)
	})

	t.Run("unknown engine", func(t *testing.T) {
		t.Parallel()
		g, err := totp.NewFromConfig(totp.Config{Engine: "md5"})
		assert.ErrorIs(t, err, totp.ErrUnknownEngine)
		assert.Nil(t, g)
	})
}

func TestGenerateTOTPWithTime(t *testing.T) {
	t.Parallel()

	code, err := totp.GenerateTOTPWithTime(rfcSecret, time.Unix(1234567890, 0))
	require.NoError(t, err)
	assert.Equal(t, "005924", code)

	code, err = totp.GenerateTOTP("JBSWY3DPEHPK3PXP")
	require.NoError(t, err)
	assert.Regexp(t, codePattern, code)

	code, err = totp.GenerateTOTP("not base32!")
	assert.Empty(t, code)
	assert.ErrorIs(t, err, totp.ErrGenerationFailed)
}
