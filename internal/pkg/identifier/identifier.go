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

package identifier

import (
	"strings"

	"github.com/lithammer/shortuuid/v4"
)

// 订单号只使用大写字母和数字, 方便客服沟通时口述
const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ1234567890"

const length = 8

// GenerateFunc 定义生成订单标识符的函数类型
type GenerateFunc func() string

// Generator 生成对外展示的短标识符, 唯一性由存储层的唯一索引兜底
type Generator struct {
	genFunc GenerateFunc
}

func NewGeneratorWith(genFunc GenerateFunc) *Generator {
	return &Generator{genFunc: genFunc}
}

func NewGenerator() *Generator {
	return NewGeneratorWith(func() string {
		return shortuuid.NewWithAlphabet(alphabet)
	})
}

// Generate 生成 8 位大写字母数字标识符
func (g *Generator) Generate() string {
	id := strings.ToUpper(g.genFunc())
	if len(id) > length {
		id = id[:length]
	}
	return id
}
