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
	"context"
	"fmt"
	"time"

	"github.com/ecodeclub/mq-api"
	"github.com/ecodeclub/mq-api/kafka"
	"github.com/gotomicro/ego/core/econf"
)

type kafkaConfig struct {
	Network   string   `yaml:"network"`
	Addresses []string `yaml:"addresses"`
	Topics    []struct {
		Name       string `yaml:"name"`
		Partitions int    `yaml:"partitions"`
	} `yaml:"topics"`
}

func InitMQ() mq.MQ {
	var cfg kafkaConfig
	if err := econf.UnmarshalKey("kafka", &cfg); err != nil {
		panic(err)
	}
	q, err := kafka.NewMQ(cfg.Network, cfg.Addresses)
	if err != nil {
		panic(err)
	}
	if err = ensureTopics(q, cfg); err != nil {
		panic(err)
	}
	return q
}

// 事件主题在启动时建好, 消费者先于生产者起来也不会报错
func ensureTopics(q mq.MQ, cfg kafkaConfig) error {
	const timeout = 15 * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	for _, t := range cfg.Topics {
		if err := q.CreateTopic(ctx, t.Name, t.Partitions); err != nil {
			return fmt.Errorf("创建Topic %s (partitions=%d) 失败: %w", t.Name, t.Partitions, err)
		}
	}
	return nil
}
