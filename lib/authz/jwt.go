//
// See the file COPYRIGHT for copyright information.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

package authz

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// JWTer signs and validates the HS256 tokens used for authentication.
type JWTer struct {
	SecretKey string
}

func (j JWTer) createJWT(claims CampClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(j.SecretKey))
	if err != nil {
		return "", fmt.Errorf("[SignedString]: %w", err)
	}
	return signed, nil
}

func (j JWTer) authenticateJWT(jwtStr string) (*CampClaims, error) {
	token, err := jwt.ParseWithClaims(
		jwtStr,
		&CampClaims{},
		func(*jwt.Token) (any, error) {
			return []byte(j.SecretKey), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("[ParseWithClaims]: %w", err)
	}
	claims, ok := token.Claims.(*CampClaims)
	if !ok {
		return nil, errors.New("token claims have the wrong type")
	}
	if claims.Username == "" {
		return nil, errors.New("a username is required")
	}
	return claims, nil
}
