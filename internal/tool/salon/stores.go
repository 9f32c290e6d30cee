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

package salon

import (
	"context"

	"salon-agent/internal/catalog"
	"salon-agent/internal/tool"
)

// FindSalonsTool 实现 find_salons
type FindSalonsTool struct {
	cat *catalog.Catalog
}

// NewFindSalonsTool 创建 find_salons 工具
func NewFindSalonsTool(cat *catalog.Catalog) *FindSalonsTool {
	return &FindSalonsTool{cat: cat}
}

// Name 实现 tool.Tool
func (t *FindSalonsTool) Name() string { return "find_salons" }

// Description 实现 tool.Tool
func (t *FindSalonsTool) Description() string {
	return "Find salons based on user query. Returns list of salons matching criteria."
}

// Schema 实现 tool.Tool
func (t *FindSalonsTool) Schema() tool.Schema {
	return tool.Schema{
		Type: "object",
		Properties: map[string]tool.SchemaProperty{
			"query": {Type: "string", Description: "Free text matched against salon name, address and description"},
		},
	}
}

// Execute 实现 tool.Tool
func (t *FindSalonsTool) Execute(ctx context.Context, input map[string]any) (tool.ToolResult, error) {
	query, err := stringArg(input, "query")
	if err != nil {
		return failure(err.Error()), nil
	}
	return jsonResult(t.cat.SearchStores(query))
}

// StoreInfoTool 实现 get_store_info
type StoreInfoTool struct {
	cat *catalog.Catalog
}

// NewStoreInfoTool 创建 get_store_info 工具
func NewStoreInfoTool(cat *catalog.Catalog) *StoreInfoTool {
	return &StoreInfoTool{cat: cat}
}

// Name 实现 tool.Tool
func (t *StoreInfoTool) Name() string { return "get_store_info" }

// Description 实现 tool.Tool
func (t *StoreInfoTool) Description() string {
	return "Get detailed information about a specific store."
}

// Schema 实现 tool.Tool
func (t *StoreInfoTool) Schema() tool.Schema {
	return tool.Schema{
		Type: "object",
		Properties: map[string]tool.SchemaProperty{
			"store_id": {Type: "integer", Description: "Store id"},
		},
		Required: []string{"store_id"},
	}
}

// Execute 实现 tool.Tool
func (t *StoreInfoTool) Execute(ctx context.Context, input map[string]any) (tool.ToolResult, error) {
	id, err := intArg(input, "store_id")
	if err != nil {
		return failure(err.Error()), nil
	}
	store, err := t.cat.StoreInfo(id)
	if err != nil {
		return lookupFailure(err)
	}
	return jsonResult(store)
}

// OpeningHoursTool 实现 get_store_opening_hours
type OpeningHoursTool struct {
	cat *catalog.Catalog
}

// NewOpeningHoursTool 创建 get_store_opening_hours 工具
func NewOpeningHoursTool(cat *catalog.Catalog) *OpeningHoursTool {
	return &OpeningHoursTool{cat: cat}
}

// Name 实现 tool.Tool
func (t *OpeningHoursTool) Name() string { return "get_store_opening_hours" }

// Description 实现 tool.Tool
func (t *OpeningHoursTool) Description() string {
	return "Get opening hours for a specific store. If day is not specified, returns all opening hours."
}

// Schema 实现 tool.Tool
func (t *OpeningHoursTool) Schema() tool.Schema {
	return tool.Schema{
		Type: "object",
		Properties: map[string]tool.SchemaProperty{
			"store_id": {Type: "integer", Description: "Store id"},
			"day":      {Type: "string", Description: "Weekday name, e.g. Monday (optional)"},
		},
		Required: []string{"store_id"},
	}
}

// Execute 实现 tool.Tool
func (t *OpeningHoursTool) Execute(ctx context.Context, input map[string]any) (tool.ToolResult, error) {
	id, err := intArg(input, "store_id")
	if err != nil {
		return failure(err.Error()), nil
	}
	day, err := stringArg(input, "day")
	if err != nil {
		return failure(err.Error()), nil
	}
	hours, err := t.cat.OpeningHours(id, day)
	if err != nil {
		return lookupFailure(err)
	}
	if hours.Day == "" {
		return jsonResult(hours.Weekly)
	}
	return jsonResult(hours.Single)
}

// DebugFindSalonsTool 调试部署的 find_salons：忽略查询，始终返回最小目录
type DebugFindSalonsTool struct {
	cat *catalog.Catalog
}

// NewDebugFindSalonsTool 创建调试用 find_salons
func NewDebugFindSalonsTool(cat *catalog.Catalog) *DebugFindSalonsTool {
	return &DebugFindSalonsTool{cat: cat}
}

// Name 实现 tool.Tool
func (t *DebugFindSalonsTool) Name() string { return "find_salons" }

// Description 实现 tool.Tool
func (t *DebugFindSalonsTool) Description() string { return "Find salons based on user query." }

// Schema 实现 tool.Tool
func (t *DebugFindSalonsTool) Schema() tool.Schema {
	return tool.Schema{
		Type: "object",
		Properties: map[string]tool.SchemaProperty{
			"query": {Type: "string", Description: "Free text query"},
		},
	}
}

// Execute 实现 tool.Tool
func (t *DebugFindSalonsTool) Execute(ctx context.Context, _ map[string]any) (tool.ToolResult, error) {
	return jsonResult(t.cat.Stores())
}
