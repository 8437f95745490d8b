package token

import (
	"crypto/rsa"
	"fmt"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"

	"github.com/sitegrid/fm-manager/pkg/model"
)

//goland:noinspection GoExportedFuncWithUnexportedType
func NewService(privateKey *rsa.PrivateKey, accessTokenExpirationSeconds int) *tokenService {
	return &tokenService{
		privateKey:                   privateKey,
		accessTokenExpirationSeconds: accessTokenExpirationSeconds,
	}
}

// Tokens domain object defining user tokens
type Tokens struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresIn   uint   `json:"expiresIn"`
}

type tokenService struct {
	privateKey                   *rsa.PrivateKey
	accessTokenExpirationSeconds int
}

func (t tokenService) GetTokens(user *model.User) (*Tokens, error) {
	accessToken, err := generateAccessToken(user, t.privateKey, t.accessTokenExpirationSeconds)
	if err != nil {
		return nil, fmt.Errorf("error generating accessToken for user %d: %v", user.ID, err)
	}

	return &Tokens{
		AccessToken: accessToken,
		TokenType:   "bearer",
		ExpiresIn:   uint(t.accessTokenExpirationSeconds),
	}, nil
}

func generateAccessToken(user *model.User, key *rsa.PrivateKey, expirationInSeconds int) (string, error) {
	unixTime := time.Now().Unix()
	tokenExpiration := unixTime + int64(expirationInSeconds)

	token := jwt.New()

	err := token.Set(jwt.IssuedAtKey, unixTime)
	if err != nil {
		return "", err
	}

	err = token.Set(jwt.ExpirationKey, tokenExpiration)
	if err != nil {
		return "", err
	}

	err = token.Set("user", user)
	if err != nil {
		return "", err
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.RS256, key))
	if err != nil {
		return "", err
	}

	return string(signed), nil
}
