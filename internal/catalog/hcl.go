package catalog

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

type fileHCL struct {
	Tables []*tableHCL `hcl:"table,block"`
}

type tableHCL struct {
	Name    string    `hcl:",label"`
	Columns []*colHCL `hcl:"column,block"`
}

type colHCL struct {
	Name     string `hcl:",label"`
	TypeName string `hcl:"type,optional"`
	Null     bool   `hcl:"null,optional"`
	Key      *int   `hcl:"key,optional"`
}

// LoadHCL decodes table blocks:
//
//	table "users" {
//	  column "id" {
//	    type = "BIGINT"
//	    key  = 0
//	  }
//	  column "name" {
//	    type = "VARCHAR"
//	    null = true
//	  }
//	}
func LoadHCL(body []byte, filename string) ([]*Table, error) {
	parser := hclparse.NewParser()
	srcHCL, diag := parser.ParseHCL(body, filename)
	if diag.HasErrors() {
		return nil, diag
	}
	if srcHCL == nil {
		return nil, fmt.Errorf("catalog: file %q contents is nil", filename)
	}
	f := &fileHCL{}
	if diag := gohcl.DecodeBody(srcHCL.Body, nil, f); diag.HasErrors() {
		return nil, diag
	}

	out := make([]*Table, 0, len(f.Tables))
	for _, th := range f.Tables {
		t := &Table{Name: th.Name}
		for _, ch := range th.Columns {
			t.Columns = append(t.Columns, ColumnSpec{
				Name: ch.Name,
				Type: ch.TypeName,
				Null: ch.Null,
				Key:  ch.Key,
			})
		}
		out = append(out, t)
	}
	return out, nil
}
