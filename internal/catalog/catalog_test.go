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
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salon-agent/pkg/errors"
)

func defaultCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := Default()
	require.NoError(t, err)
	return c
}

func TestDefault_Contents(t *testing.T) {
	c := defaultCatalog(t)
	stores := c.Stores()
	require.Len(t, stores, 3)
	assert.Equal(t, "Glamour Spa & Salon", stores[0].Name)
	assert.Equal(t, "Elegant Cuts & Colors", stores[1].Name)
	assert.Equal(t, "Relaxation Station", stores[2].Name)
	assert.Equal(t, "(212) 555-0456", stores[1].Phone)
	assert.InDelta(t, 40.7282, stores[2].Latitude, 1e-9)

	services := c.Services()
	require.Len(t, services, 8)
	assert.Equal(t, "Hair Color", services[1].Name)
	assert.Equal(t, 120, services[1].Duration)
	assert.InDelta(t, 120.0, services[1].Price, 1e-9)
}

func TestOpeningHours_FullWeekForEveryStore(t *testing.T) {
	c := defaultCatalog(t)
	for _, s := range c.Stores() {
		h, err := c.OpeningHours(s.ID, "")
		require.NoError(t, err)
		assert.Equal(t, "", h.Day)
		assert.Len(t, h.Weekly, 7, "store %d", s.ID)
		for _, d := range Weekdays {
			assert.Contains(t, h.Weekly, d)
		}
	}
}

func TestOpeningHours_SingleDay(t *testing.T) {
	c := defaultCatalog(t)

	h, err := c.OpeningHours(1, "Thursday")
	require.NoError(t, err)
	assert.Equal(t, "Thursday", h.Day)
	assert.Equal(t, DayHours{Open: "09:00", Close: "21:00"}, h.Single)

	h, err = c.OpeningHours(2, "  sunday ")
	require.NoError(t, err)
	assert.Equal(t, "Sunday", h.Day)
	assert.Equal(t, DayHours{Open: "10:00", Close: "16:00"}, h.Single)
}

func TestOpeningHours_Errors(t *testing.T) {
	c := defaultCatalog(t)

	_, err := c.OpeningHours(1, "Funday")
	assert.ErrorIs(t, err, ErrDayNotFound)
	assert.True(t, errors.Is(err, errors.ErrNotFound))

	_, err = c.OpeningHours(42, "Monday")
	assert.ErrorIs(t, err, ErrStoreNotFound)

	// 无营业时间表的门店
	_, err = Minimal().OpeningHours(1, "Monday")
	assert.ErrorIs(t, err, ErrDayNotFound)
}

func TestSearchStores(t *testing.T) {
	c := defaultCatalog(t)
	all := c.Stores()

	assert.Equal(t, all, c.SearchStores(""))
	assert.Equal(t, all, c.SearchStores("zzz-no-such-salon"))

	got := c.SearchStores("BROADWAY")
	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].ID)

	got = c.SearchStores("massages")
	require.Len(t, got, 1)
	assert.Equal(t, "Relaxation Station", got[0].Name)

	got = c.SearchStores("new york")
	assert.Len(t, got, 3)
}

func TestServicesByStore(t *testing.T) {
	c := defaultCatalog(t)

	got := c.ServicesByStore(3)
	require.Len(t, got, 2)
	assert.Equal(t, "Deep Tissue Massage", got[0].Name)
	assert.Equal(t, "Facial", got[1].Name)

	assert.Len(t, c.ServicesByStore(1), 4)

	empty := c.ServicesByStore(99)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	assert.Empty(t, Minimal().ServicesByStore(1))
}

func TestSearchServicesByName(t *testing.T) {
	c := defaultCatalog(t)

	got := c.SearchServicesByName("CUT")
	names := make([]string, 0, len(got))
	for _, s := range got {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"Haircut", "Cut & Style"}, names)

	assert.Empty(t, c.SearchServicesByName("tattoo"))
	// 只匹配名称，不匹配描述
	assert.Empty(t, c.SearchServicesByName("blowout"))
}

func TestStoreInfo(t *testing.T) {
	c := defaultCatalog(t)

	s, err := c.StoreInfo(2)
	require.NoError(t, err)
	assert.Equal(t, "hello@elegantcuts.com", s.Email)

	_, err = c.StoreInfo(0)
	assert.ErrorIs(t, err, ErrStoreNotFound)
}

func TestStores_ReturnsCopies(t *testing.T) {
	c := defaultCatalog(t)
	s := c.Stores()
	s[0].Name = "changed"
	s[0].OpeningHours["Monday"] = DayHours{Open: "00:00", Close: "00:01"}

	again, err := c.StoreInfo(1)
	require.NoError(t, err)
	assert.Equal(t, "Glamour Spa & Salon", again.Name)
	assert.Equal(t, "09:00", again.OpeningHours["Monday"].Open)
}

func TestMinimal(t *testing.T) {
	c := Minimal()
	stores := c.Stores()
	require.Len(t, stores, 1)
	assert.Equal(t, Store{ID: 1, Name: "Glamour Spa & Salon", Address: "123 Main St, New York, NY"}, stores[0])
	assert.Empty(t, c.Services())
}

func TestNew_Validation(t *testing.T) {
	week := func() WeeklyHours {
		h := WeeklyHours{}
		for _, d := range Weekdays {
			h[d] = DayHours{Open: "09:00", Close: "17:00"}
		}
		return h
	}
	store := Store{ID: 1, Name: "A", OpeningHours: week()}

	tests := []struct {
		name     string
		stores   []Store
		services []Service
	}{
		{"duplicate store", []Store{store, store}, nil},
		{"empty name", []Store{{ID: 2}}, nil},
		{"unknown store ref", []Store{store}, []Service{{ID: 1, Name: "x", Duration: 10, StoreID: 9}}},
		{"zero duration", []Store{store}, []Service{{ID: 1, Name: "x", StoreID: 1}}},
		{"negative price", []Store{store}, []Service{{ID: 1, Name: "x", Duration: 5, Price: -1, StoreID: 1}}},
		{"duplicate service", []Store{store}, []Service{
			{ID: 1, Name: "x", Duration: 5, StoreID: 1},
			{ID: 1, Name: "y", Duration: 5, StoreID: 1},
		}},
		{"missing weekday", []Store{{ID: 1, Name: "A", OpeningHours: func() WeeklyHours {
			h := week()
			delete(h, "Sunday")
			return h
		}()}}, nil},
		{"bad time", []Store{{ID: 1, Name: "A", OpeningHours: func() WeeklyHours {
			h := week()
			h["Monday"] = DayHours{Open: "9am", Close: "17:00"}
			return h
		}()}}, nil},
		{"closes before open", []Store{{ID: 1, Name: "A", OpeningHours: func() WeeklyHours {
			h := week()
			h["Monday"] = DayHours{Open: "18:00", Close: "17:00"}
			return h
		}()}}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.stores, tt.services)
			assert.ErrorIs(t, err, errors.ErrInvalidArg)
		})
	}

	_, err := New([]Store{store}, []Service{{ID: 1, Name: "x", Duration: 5, StoreID: 1}})
	assert.NoError(t, err)
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("stores: [::"))
	assert.Error(t, err)
}

func TestNormalizeWeekday(t *testing.T) {
	d, ok := NormalizeWeekday(" wEdNeSdAy")
	assert.True(t, ok)
	assert.Equal(t, "Wednesday", d)

	_, ok = NormalizeWeekday("Wed")
	assert.False(t, ok)
}

func TestSearchStores_QueryNotTrimmed(t *testing.T) {
	c := defaultCatalog(t)

	got := c.SearchStores("sta")
	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].ID)

	// "sta " 不在任何门店文本中出现，回退为全部门店
	assert.Len(t, c.SearchStores("sta "), 3)
}

func TestWeeklyHours_MarshalJSONOrder(t *testing.T) {
	store, err := defaultCatalog(t).StoreInfo(1)
	require.NoError(t, err)

	b, err := json.Marshal(store.OpeningHours)
	require.NoError(t, err)
	out := string(b)
	assert.True(t, strings.HasPrefix(out, `{"Monday":{"open":"09:00","close":"20:00"},"Tuesday":`), out)
	last := -1
	for _, d := range Weekdays {
		i := strings.Index(out, `"`+d+`"`)
		require.GreaterOrEqual(t, i, 0, d)
		assert.Greater(t, i, last, d)
		last = i
	}

	b, err = json.Marshal(WeeklyHours{"Holiday": {Open: "10:00", Close: "12:00"}, "Sunday": {Open: "11:00", Close: "15:00"}})
	require.NoError(t, err)
	assert.Equal(t, `{"Sunday":{"open":"11:00","close":"15:00"},"Holiday":{"open":"10:00","close":"12:00"}}`, string(b))

	b, err = json.Marshal(Minimal().Stores()[0])
	require.NoError(t, err)
	assert.NotContains(t, string(b), "opening_hours")
}
