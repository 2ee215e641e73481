package utils

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fieldforce-dev/workforce/backend/internal/domain"
)

var (
	ErrEmptyCSV          = errors.New("csv file is empty")
	ErrMissingNameColumn = errors.New("csv header must contain a name column")
)

// ParseCustomersCSV 读取带表头的客户 CSV，识别 name、phone、email、address 四列（不区分大小写），其他列忽略
func ParseCustomersCSV(src io.Reader) ([]*domain.Customer, error) {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyCSV
		}
		return nil, err
	}

	columns := make(map[string]int)
	for i, name := range header {
		// Excel 导出的文件开头可能带有 BOM
		name = strings.TrimPrefix(name, "\ufeff")
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := columns["name"]; !ok {
		return nil, ErrMissingNameColumn
	}

	value := func(record []string, column string) string {
		i, ok := columns[column]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	customers := make([]*domain.Customer, 0)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		c := &domain.Customer{
			Name:    value(record, "name"),
			Phone:   value(record, "phone"),
			Email:   value(record, "email"),
			Address: value(record, "address"),
		}
		if c.Name == "" {
			line, _ := reader.FieldPos(0)
			return nil, fmt.Errorf("line %d: name is required", line)
		}
		customers = append(customers, c)
	}

	if len(customers) == 0 {
		return nil, ErrEmptyCSV
	}

	return customers, nil
}
