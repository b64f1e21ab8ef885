package tools

import (
	"fmt"
	"reflect"

	"github.com/xuri/excelize/v2"
)

// WriteSheet 把结构体切片写入 sheet，列名取自 excel tag，"-" 表示跳过，嵌入结构体会被展开
func WriteSheet[T any](f *excelize.File, sheet string, rows []T) error {
	elemType := reflect.TypeOf((*T)(nil)).Elem()
	if elemType.Kind() == reflect.Ptr {
		elemType = elemType.Elem()
	}
	if elemType.Kind() != reflect.Struct {
		return fmt.Errorf("%s 不是结构体", elemType)
	}
	if sheet == "" {
		sheet = "Sheet1"
	}
	if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
		if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
	}

	type column struct {
		index  []int
		header string
	}
	var columns []column
	var collect func(t reflect.Type, parent []int)
	collect = func(t reflect.Type, parent []int) {
		for i := 0; i < t.NumField(); i++ {
			sf := t.Field(i)
			if !sf.IsExported() {
				continue
			}
			idx := append(append([]int(nil), parent...), i)
			if sf.Anonymous && sf.Type.Kind() == reflect.Struct {
				collect(sf.Type, idx)
				continue
			}
			tag := sf.Tag.Get("excel")
			if tag == "-" {
				continue
			}
			if tag == "" {
				tag = sf.Name
			}
			columns = append(columns, column{index: idx, header: tag})
		}
	}
	collect(elemType, nil)

	header := make([]any, len(columns))
	for i, col := range columns {
		header[i] = col.header
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for r, row := range rows {
		v := reflect.ValueOf(row)
		if v.Kind() == reflect.Ptr {
			if v.IsNil() {
				continue
			}
			v = v.Elem()
		}
		values := make([]any, len(columns))
		for i, col := range columns {
			fv := v.FieldByIndex(col.index)
			if fv.Kind() == reflect.Ptr {
				if fv.IsNil() {
					values[i] = ""
					continue
				}
				fv = fv.Elem()
			}
			values[i] = fv.Interface()
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}
	return nil
}
