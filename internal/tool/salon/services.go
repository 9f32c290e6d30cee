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

// ServicesByStoreTool 实现 find_services_by_store
type ServicesByStoreTool struct {
	cat *catalog.Catalog
}

// NewServicesByStoreTool 创建 find_services_by_store 工具
func NewServicesByStoreTool(cat *catalog.Catalog) *ServicesByStoreTool {
	return &ServicesByStoreTool{cat: cat}
}

// Name 实现 tool.Tool
func (t *ServicesByStoreTool) Name() string { return "find_services_by_store" }

// Description 实现 tool.Tool
func (t *ServicesByStoreTool) Description() string {
	return "Find services offered by a specific store."
}

// Schema 实现 tool.Tool
func (t *ServicesByStoreTool) Schema() tool.Schema {
	return tool.Schema{
		Type: "object",
		Properties: map[string]tool.SchemaProperty{
			"store_id": {Type: "integer", Description: "Store id"},
		},
		Required: []string{"store_id"},
	}
}

// Execute 实现 tool.Tool；门店不存在或没有服务都返回空列表
func (t *ServicesByStoreTool) Execute(ctx context.Context, input map[string]any) (tool.ToolResult, error) {
	id, err := intArg(input, "store_id")
	if err != nil {
		return failure(err.Error()), nil
	}
	return jsonResult(t.cat.ServicesByStore(id))
}

// ServicesByNameTool 实现 find_services_by_name
type ServicesByNameTool struct {
	cat *catalog.Catalog
}

// NewServicesByNameTool 创建 find_services_by_name 工具
func NewServicesByNameTool(cat *catalog.Catalog) *ServicesByNameTool {
	return &ServicesByNameTool{cat: cat}
}

// Name 实现 tool.Tool
func (t *ServicesByNameTool) Name() string { return "find_services_by_name" }

// Description 实现 tool.Tool
func (t *ServicesByNameTool) Description() string {
	return "Find services by name across all stores."
}

// Schema 实现 tool.Tool
func (t *ServicesByNameTool) Schema() tool.Schema {
	return tool.Schema{
		Type: "object",
		Properties: map[string]tool.SchemaProperty{
			"service_name": {Type: "string", Description: "Full or partial service name"},
		},
		Required: []string{"service_name"},
	}
}

// Execute 实现 tool.Tool
func (t *ServicesByNameTool) Execute(ctx context.Context, input map[string]any) (tool.ToolResult, error) {
	if _, ok := input["service_name"]; !ok {
		return failure("service_name is required"), nil
	}
	name, err := stringArg(input, "service_name")
	if err != nil {
		return failure(err.Error()), nil
	}
	return jsonResult(t.cat.SearchServicesByName(name))
}
