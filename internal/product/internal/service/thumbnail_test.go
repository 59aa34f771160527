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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenditionGenerator_Generate(t *testing.T) {
	t.Parallel()
	gen := NewRenditionGenerator("https://cdn.example.com/")

	t.Run("相对路径拼接裁剪规格", func(t *testing.T) {
		t.Parallel()
		got, err := gen.Generate(context.Background(), "/images/shoe.jpg", "fill-400x225")
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/fill-400x225/images/shoe.jpg", got)
	})

	t.Run("绝对路径原样返回", func(t *testing.T) {
		t.Parallel()
		got, err := gen.Generate(context.Background(), "https://other.cdn/img.jpg", "fill-400x225")
		require.NoError(t, err)
		assert.Equal(t, "https://other.cdn/img.jpg", got)
	})

	t.Run("无图返回ErrImageNotFound", func(t *testing.T) {
		t.Parallel()
		_, err := gen.Generate(context.Background(), "", "fill-400x225")
		assert.ErrorIs(t, err, ErrImageNotFound)
	})
}
