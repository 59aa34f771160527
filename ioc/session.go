// Copyright 2023 ecodeclub
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ioc

import (
	"time"

	"github.com/ecodeclub/ginx/session"
	"github.com/ecodeclub/ginx/session/cookie"
	"github.com/ecodeclub/ginx/session/header"
	"github.com/ecodeclub/ginx/session/mixin"
	redis2 "github.com/ecodeclub/ginx/session/redis"
	"github.com/gotomicro/ego/core/econf"
	"github.com/redis/go-redis/v9"
)

const sessionTTL = 24 * time.Hour

func InitSession(cmd redis.Cmdable) session.Provider {
	type Config struct {
		SessionEncryptedKey string `yaml:"sessionEncryptedKey"`
		Cookie              struct {
			Domain string `yaml:"domain"`
		} `yaml:"cookie"`
	}
	var cfg Config
	if err := econf.UnmarshalKey("session", &cfg); err != nil {
		panic(err)
	}
	sp := redis2.NewSessionProvider(cmd, cfg.SessionEncryptedKey, sessionTTL)
	// 店铺前端走 cookie, 移动端和第三方走 header, 两种载体都认
	sp.TokenCarrier = mixin.NewTokenCarrier(
		header.NewTokenCarrier(),
		&cookie.TokenCarrier{
			MaxAge:   int(sessionTTL.Seconds()),
			Name:     "ssid",
			Secure:   true,
			HttpOnly: true,
			Domain:   cfg.Cookie.Domain,
		})
	return sp
}
