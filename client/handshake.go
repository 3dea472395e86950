// Copyright 2020 DataStax
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package client

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/nativecql/driver/frame"
	"github.com/nativecql/driver/message"
	"github.com/nativecql/driver/primitive"
)

// InitiateHandshake initiates the handshake procedure to initialize the client connection, using the given protocol
// version. The handshake will use authentication if the connection was created with auth credentials; otherwise it will
// proceed without authentication. Use stream id zero to activate automatic stream id management.
func (c *CqlClientConnection) InitiateHandshake(version primitive.ProtocolVersion, streamId int16) (err error) {
	log.Debug().Msgf("%v: performing handshake", c)
	c.version = version
	if startup, err := c.NewStartupRequest(version, streamId); err != nil {
		return err
	} else {
		var response *frame.Frame
		if response, err = c.SendAndReceive(startup); err == nil {
			if c.credentials == nil {
				if _, authSuccess := response.Body.Message.(*message.Ready); !authSuccess {
					err = fmt.Errorf("expected READY, got %v", response.Body.Message)
				}
			} else {
				switch msg := response.Body.Message.(type) {
				case *message.Ready:
					log.Warn().Msgf("%v: expected AUTHENTICATE, got READY â€“ is authentication required?", c)
					break
				case *message.Authenticate:
					authenticator := &PlainTextAuthenticator{c.credentials}
					var initialResponse []byte
					if initialResponse, err = authenticator.InitialResponse(msg.Authenticator); err == nil {
						authResponse := frame.NewFrame(version, streamId, &message.AuthResponse{Token: initialResponse})
						if response, err = c.SendAndReceive(authResponse); err != nil {
							err = fmt.Errorf("could not send AUTH RESPONSE: %w", err)
						} else {
							switch msg := response.Body.Message.(type) {
							case *message.AuthSuccess:
								break
							case *message.AuthChallenge:
								var challenge []byte
								if challenge, err = authenticator.EvaluateChallenge(msg.Token); err == nil {
									authResponse := frame.NewFrame(version, streamId, &message.AuthResponse{Token: challenge})
									if response, err = c.SendAndReceive(authResponse); err != nil {
										err = fmt.Errorf("could not send AUTH RESPONSE: %w", err)
									} else if _, authSuccess := response.Body.Message.(*message.AuthSuccess); !authSuccess {
										err = fmt.Errorf("expected AUTH_SUCCESS, got %v", response.Body.Message)
									}
								}
							default:
								err = fmt.Errorf("expected AUTH_CHALLENGE or AUTH_SUCCESS, got %v", response.Body.Message)
							}
						}
					}
				default:
					err = fmt.Errorf("expected AUTHENTICATE or READY, got %v", response.Body.Message)
				}
			}
		}
		if err == nil {
			log.Info().Msgf("%v: handshake successful", c)
		} else {
			log.Error().Err(err).Msgf("%v: handshake failed", c)
		}
		return err
	}
}
