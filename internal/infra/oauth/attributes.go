package oauth

import (
	"strconv"
	"strings"

	"housing/internal/domain/entity"
	domainerrors "housing/internal/domain/errors"
	"housing/internal/domain/service"
)

// ParseProvider maps a path segment to a supported provider. Anything
// outside the allow-list is rejected before any network call is made.
func ParseProvider(name string) (entity.AuthType, error) {
	switch strings.ToLower(name) {
	case "google":
		return entity.AuthTypeGoogle, nil
	case "kakao":
		return entity.AuthTypeKakao, nil
	default:
		return "", domainerrors.ErrUnsupportedProvider.WrapMessage("unknown provider: " + name)
	}
}

// GoogleAttributes is the subset of the Google userinfo payload we read.
type GoogleAttributes struct {
	Sub   string `json:"sub"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Normalize converts the raw Google payload into a provider-neutral
// identity. A missing subject identifier is a hard error; email and name
// may legitimately be absent depending on granted scopes.
func (a *GoogleAttributes) Normalize() (*service.OAuthUser, error) {
	if a.Sub == "" {
		return nil, domainerrors.ErrMissingProviderID.WrapMessage("google payload has no sub")
	}

	return &service.OAuthUser{
		Provider:   entity.AuthTypeGoogle,
		ProviderID: a.Sub,
		Email:      a.Email,
		Name:       a.Name,
	}, nil
}

// KakaoAttributes is the subset of the Kakao /v2/user/me payload we read.
// Kakao nests profile data under kakao_account.
type KakaoAttributes struct {
	ID           int64 `json:"id"`
	KakaoAccount struct {
		Email   string `json:"email"`
		Profile struct {
			Nickname string `json:"nickname"`
		} `json:"profile"`
	} `json:"kakao_account"`
}

// Normalize converts the raw Kakao payload into a provider-neutral
// identity. Kakao's numeric id is stringified so the stored provider key
// has one shape regardless of provider.
func (a *KakaoAttributes) Normalize() (*service.OAuthUser, error) {
	if a.ID == 0 {
		return nil, domainerrors.ErrMissingProviderID.WrapMessage("kakao payload has no id")
	}

	return &service.OAuthUser{
		Provider:   entity.AuthTypeKakao,
		ProviderID: strconv.FormatInt(a.ID, 10),
		Email:      a.KakaoAccount.Email,
		Name:       a.KakaoAccount.Profile.Nickname,
	}, nil
}
