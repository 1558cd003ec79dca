package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"testing"
	"time"

	"giftlist_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	config.AppConfig = &config.Config{}
	config.AppConfig.JWT.Secret = "test-secret"
	config.AppConfig.JWT.TTL = 60
}

// signInitData собирает строку initData и подписывает ее так же, как это
// делает Telegram на своей стороне.
func signInitData(botToken string, fields map[string]string) string {
	pairs := make([]string, 0, len(fields))
	for key, value := range fields {
		pairs = append(pairs, key+"="+value)
	}
	sort.Strings(pairs)

	secret := hmac.New(sha256.New, []byte("WebAppData"))
	secret.Write([]byte(botToken))
	mac := hmac.New(sha256.New, secret.Sum(nil))
	mac.Write([]byte(strings.Join(pairs, "\n")))
	hash := hex.EncodeToString(mac.Sum(nil))

	query := url.Values{}
	for key, value := range fields {
		query.Set(key, value)
	}
	query.Set("hash", hash)
	return query.Encode()
}

func TestVerifyInitData_Valid(t *testing.T) {
	botToken := "123456:bot-token"
	initData := signInitData(botToken, map[string]string{
		"auth_date": fmt.Sprintf("%d", time.Now().Unix()),
		"user":      `{"id":42,"first_name":"Анна","username":"anna","language_code":"ru"}`,
	})

	user, err := VerifyInitData(initData, botToken)
	require.NoError(t, err)
	assert.EqualValues(t, 42, user.ID)
	assert.Equal(t, "Анна", user.FirstName)
	assert.Equal(t, "ru", user.LanguageCode)
}

func TestVerifyInitData_TamperedPayload(t *testing.T) {
	botToken := "123456:bot-token"
	initData := signInitData(botToken, map[string]string{
		"auth_date": fmt.Sprintf("%d", time.Now().Unix()),
		"user":      `{"id":42,"first_name":"Анна"}`,
	})

	// Подмена поля после подписи ломает проверку
	tampered := strings.Replace(initData, "42", "43", 1)
	_, err := VerifyInitData(tampered, botToken)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInitData))

	// Чужой токен бота тоже не проходит
	_, err = VerifyInitData(initData, "999:other-token")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInitData))
}

func TestVerifyInitData_Expired(t *testing.T) {
	botToken := "123456:bot-token"
	stale := time.Now().Add(-25 * time.Hour).Unix()
	initData := signInitData(botToken, map[string]string{
		"auth_date": fmt.Sprintf("%d", stale),
		"user":      `{"id":42,"first_name":"Анна"}`,
	})

	_, err := VerifyInitData(initData, botToken)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInitDataExpired))
}

func TestVerifyInitData_MissingHash(t *testing.T) {
	_, err := VerifyInitData("auth_date=1", "token")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInitData))
}

func TestToken_RoundTrip(t *testing.T) {
	token, err := GenerateToken("user-uuid", 42)
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-uuid", claims.UserID)
	assert.EqualValues(t, 42, claims.TelegramID)
}

func TestToken_Garbage(t *testing.T) {
	_, err := ParseToken("not.a.token")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}
