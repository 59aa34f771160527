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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	g := NewGeneratorWith(func() string { return "nUfojcH2M5j2j3Tk5A1mf2" })
	id := g.Generate()
	assert.Equal(t, "NUFOJCH2", id)
}

func TestGenerateAlphabet(t *testing.T) {
	g := NewGenerator()
	for i := 0; i < 100; i++ {
		id := g.Generate()
		assert.Len(t, id, 8)
		for _, r := range id {
			assert.True(t, (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'), string(r))
		}
	}
}
