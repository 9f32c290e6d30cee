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

package catalog

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"
)

// Weekdays 一周七天的规范名称（营业时间表的键）
var Weekdays = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// DayHours 某一天的营业时间（24 小时制 HH:MM）
type DayHours struct {
	Open  string `json:"open" yaml:"open"`
	Close string `json:"close" yaml:"close"`
}

// WeeklyHours 周营业时间表，键为 Weekdays 中的名称
type WeeklyHours map[string]DayHours

// MarshalJSON 按 Monday..Sunday 的顺序输出，其余键按字典序排在后面
func (w WeeklyHours) MarshalJSON() ([]byte, error) {
	if w == nil {
		return []byte("null"), nil
	}
	keys := make([]string, 0, len(w))
	for _, d := range Weekdays {
		if _, ok := w[d]; ok {
			keys = append(keys, d)
		}
	}
	var extra []string
	for k := range w {
		if !containsDay(keys, k) {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	keys = append(keys, extra...)

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		hours, err := json.Marshal(w[k])
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(hours)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func containsDay(days []string, day string) bool {
	for _, d := range days {
		if d == day {
			return true
		}
	}
	return false
}

// Store 门店
type Store struct {
	ID           int         `json:"id" yaml:"id"`
	Name         string      `json:"name" yaml:"name"`
	Address      string      `json:"address" yaml:"address"`
	Latitude     float64     `json:"latitude,omitempty" yaml:"latitude"`
	Longitude    float64     `json:"longitude,omitempty" yaml:"longitude"`
	Phone        string      `json:"phone,omitempty" yaml:"phone"`
	Email        string      `json:"email,omitempty" yaml:"email"`
	Description  string      `json:"description,omitempty" yaml:"description"`
	OpeningHours WeeklyHours `json:"opening_hours,omitempty" yaml:"opening_hours"`
}

// Service 门店提供的服务
type Service struct {
	ID          int     `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description" yaml:"description"`
	Duration    int     `json:"duration" yaml:"duration"` // 分钟
	Price       float64 `json:"price" yaml:"price"`
	StoreID     int     `json:"store_id" yaml:"store_id"`
}

// NormalizeWeekday 将 "monday"、" MONDAY " 等输入规范为 "Monday"；无法识别时返回 false
func NormalizeWeekday(day string) (string, bool) {
	d := strings.TrimSpace(day)
	for _, w := range Weekdays {
		if strings.EqualFold(d, w) {
			return w, true
		}
	}
	return "", false
}

func (s Store) clone() Store {
	if s.OpeningHours != nil {
		hours := make(WeeklyHours, len(s.OpeningHours))
		for k, v := range s.OpeningHours {
			hours[k] = v
		}
		s.OpeningHours = hours
	}
	return s
}

func (s Store) matches(lowerQuery string) bool {
	return strings.Contains(strings.ToLower(s.Name), lowerQuery) ||
		strings.Contains(strings.ToLower(s.Address), lowerQuery) ||
		strings.Contains(strings.ToLower(s.Description), lowerQuery)
}
