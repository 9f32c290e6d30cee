// Copyright 2026 fanjia1024
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

// Package catalog 门店与服务目录：启动时加载，之后只读
package catalog

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"salon-agent/pkg/errors"
)

var (
	// ErrStoreNotFound 门店 id 不存在
	ErrStoreNotFound = errors.Wrap(errors.ErrNotFound, "Store not found")
	// ErrDayNotFound 营业时间表中没有该日
	ErrDayNotFound = errors.Wrap(errors.ErrNotFound, "Day not found in schedule")
)

//go:embed data/catalog.yaml
var defaultData []byte

type document struct {
	Stores   []Store   `yaml:"stores"`
	Services []Service `yaml:"services"`
}

// Catalog 只读目录；并发安全（构造后不再修改）
type Catalog struct {
	stores   []Store
	services []Service
	byID     map[int]int
}

// New 校验并构建目录
func New(stores []Store, services []Service) (*Catalog, error) {
	c := &Catalog{
		stores:   make([]Store, 0, len(stores)),
		services: make([]Service, 0, len(services)),
		byID:     make(map[int]int, len(stores)),
	}
	for _, s := range stores {
		if _, dup := c.byID[s.ID]; dup {
			return nil, errors.Wrapf(errors.ErrInvalidArg, "duplicate store id %d", s.ID)
		}
		if strings.TrimSpace(s.Name) == "" {
			return nil, errors.Wrapf(errors.ErrInvalidArg, "store %d: empty name", s.ID)
		}
		if len(s.OpeningHours) > 0 {
			if err := validateHours(s.OpeningHours); err != nil {
				return nil, errors.Wrapf(err, "store %d", s.ID)
			}
		}
		c.byID[s.ID] = len(c.stores)
		c.stores = append(c.stores, s.clone())
	}
	seen := make(map[int]struct{}, len(services))
	for _, svc := range services {
		if _, dup := seen[svc.ID]; dup {
			return nil, errors.Wrapf(errors.ErrInvalidArg, "duplicate service id %d", svc.ID)
		}
		seen[svc.ID] = struct{}{}
		if _, ok := c.byID[svc.StoreID]; !ok {
			return nil, errors.Wrapf(errors.ErrInvalidArg, "service %d: unknown store %d", svc.ID, svc.StoreID)
		}
		if svc.Duration <= 0 {
			return nil, errors.Wrapf(errors.ErrInvalidArg, "service %d: duration must be positive", svc.ID)
		}
		if svc.Price < 0 {
			return nil, errors.Wrapf(errors.ErrInvalidArg, "service %d: negative price", svc.ID)
		}
		c.services = append(c.services, svc)
	}
	return c, nil
}

func validateHours(hours WeeklyHours) error {
	if len(hours) != len(Weekdays) {
		return errors.Wrapf(errors.ErrInvalidArg, "schedule has %d days, want %d", len(hours), len(Weekdays))
	}
	for _, day := range Weekdays {
		h, ok := hours[day]
		if !ok {
			return errors.Wrapf(errors.ErrInvalidArg, "schedule missing %s", day)
		}
		open, err := time.Parse("15:04", h.Open)
		if err != nil {
			return errors.Wrapf(errors.ErrInvalidArg, "%s open %q", day, h.Open)
		}
		closing, err := time.Parse("15:04", h.Close)
		if err != nil {
			return errors.Wrapf(errors.ErrInvalidArg, "%s close %q", day, h.Close)
		}
		if !closing.After(open) {
			return errors.Wrapf(errors.ErrInvalidArg, "%s closes before it opens", day)
		}
	}
	return nil
}

// Parse 从 YAML 文档构建目录
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "decode catalog")
	}
	return New(doc.Stores, doc.Services)
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
	defaultErr  error
)

// Default 返回内置数据集（三家门店、八项服务）
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCat, defaultErr = Parse(defaultData)
	})
	return defaultCat, defaultErr
}

// Minimal 调试部署使用的目录：一家门店，仅 id/名称/地址，无服务
func Minimal() *Catalog {
	c, err := New([]Store{{ID: 1, Name: "Glamour Spa & Salon", Address: "123 Main St, New York, NY"}}, nil)
	if err != nil {
		panic(fmt.Sprintf("catalog: minimal data set invalid: %v", err))
	}
	return c
}

// Stores 全部门店（副本，目录顺序）
func (c *Catalog) Stores() []Store {
	out := make([]Store, len(c.stores))
	for i, s := range c.stores {
		out[i] = s.clone()
	}
	return out
}

// Services 全部服务（副本）
func (c *Catalog) Services() []Service {
	out := make([]Service, len(c.services))
	copy(out, c.services)
	return out
}

// SearchStores 按名称、地址、描述做不区分大小写的子串匹配，查询原样参与匹配（不裁剪空白）；
// 查询为空或无任何命中时返回全部门店
func (c *Catalog) SearchStores(query string) []Store {
	if query == "" {
		return c.Stores()
	}
	q := strings.ToLower(query)
	var out []Store
	for _, s := range c.stores {
		if s.matches(q) {
			out = append(out, s.clone())
		}
	}
	if len(out) == 0 {
		return c.Stores()
	}
	return out
}

// ServicesByStore 某门店提供的服务；没有时返回空切片
func (c *Catalog) ServicesByStore(storeID int) []Service {
	out := make([]Service, 0)
	for _, svc := range c.services {
		if svc.StoreID == storeID {
			out = append(out, svc)
		}
	}
	return out
}

// SearchServicesByName 跨门店按服务名做不区分大小写的子串匹配
func (c *Catalog) SearchServicesByName(name string) []Service {
	q := strings.ToLower(name)
	out := make([]Service, 0)
	for _, svc := range c.services {
		if strings.Contains(strings.ToLower(svc.Name), q) {
			out = append(out, svc)
		}
	}
	return out
}

// StoreInfo 门店完整信息
func (c *Catalog) StoreInfo(storeID int) (Store, error) {
	i, ok := c.byID[storeID]
	if !ok {
		return Store{}, ErrStoreNotFound
	}
	return c.stores[i].clone(), nil
}

// Hours 营业时间查询结果；Day 为空表示 Weekly 为完整周表
type Hours struct {
	Day    string
	Weekly WeeklyHours
	Single DayHours
}

// OpeningHours day 为空时返回完整周表，否则返回该日营业时间
func (c *Catalog) OpeningHours(storeID int, day string) (Hours, error) {
	store, err := c.StoreInfo(storeID)
	if err != nil {
		return Hours{}, err
	}
	if strings.TrimSpace(day) == "" {
		return Hours{Weekly: store.OpeningHours}, nil
	}
	name, ok := NormalizeWeekday(day)
	if !ok {
		return Hours{}, ErrDayNotFound
	}
	h, ok := store.OpeningHours[name]
	if !ok {
		return Hours{}, ErrDayNotFound
	}
	return Hours{Day: name, Single: h}, nil
}
