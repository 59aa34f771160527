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

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var ErrImageNotFound = errors.New("商品图片不存在")

// ThumbnailGenerator 生成商品缩略图地址。
// 下单快照对缩略图是尽力而为的, 调用方拿到错误时应当降级而不是中断
type ThumbnailGenerator interface {
	Generate(ctx context.Context, image string, spec string) (string, error)
}

// renditionGenerator 按裁剪规格拼接CDN地址, 真实裁剪由CDN侧完成
type renditionGenerator struct {
	baseURL string
}

func NewRenditionGenerator(baseURL string) ThumbnailGenerator {
	return &renditionGenerator{baseURL: strings.TrimSuffix(baseURL, "/")}
}

func (g *renditionGenerator) Generate(_ context.Context, image string, spec string) (string, error) {
	if image == "" {
		return "", ErrImageNotFound
	}
	if g.baseURL == "" || strings.HasPrefix(image, "http") {
		return image, nil
	}
	return fmt.Sprintf("%s/%s/%s", g.baseURL, spec, strings.TrimPrefix(image, "/")), nil
}
