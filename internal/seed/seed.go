package seed

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/fieldforce-dev/workforce/backend/internal/domain"
	"github.com/fieldforce-dev/workforce/backend/internal/utils"
)

const DefaultDemoCustomersPath = "./internal/seed/data/demo_customers.csv"

type Store interface {
	GetAllUsers() ([]*domain.User, error)
	GetUnassignedCustomers() ([]*domain.Customer, error)
	ImportCustomers(customers []*domain.Customer) (int, error)
	AllocateCustomer(customerID int64, employeeID int64) error
}

// SeedDemoData 导入 CSV 中的客户，并把尚未分配的客户轮流分配给在职的外勤员工，返回导入和分配的数量
func SeedDemoData(s Store, path string) (imported int, allocated int, err error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer file.Close()

	customers, err := utils.ParseCustomersCSV(file)
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", path, err)
	}

	imported, err = s.ImportCustomers(customers)
	if err != nil {
		return 0, 0, err
	}
	slog.Info("导入客户完成", "count", imported)

	users, err := s.GetAllUsers()
	if err != nil {
		return imported, 0, err
	}

	employees := make([]*domain.User, 0, len(users))
	for _, u := range users {
		if u.Role == domain.RoleEmployee && u.IsActive {
			employees = append(employees, u)
		}
	}
	if len(employees) == 0 {
		slog.Warn("没有可分配的外勤员工，跳过客户分配")
		return imported, 0, nil
	}

	unassigned, err := s.GetUnassignedCustomers()
	if err != nil {
		return imported, 0, err
	}

	for _, c := range unassigned {
		employee := employees[allocated%len(employees)]
		if err := s.AllocateCustomer(c.ID, employee.ID); err != nil {
			slog.Error("分配客户失败", "customer_id", c.ID, "employee_id", employee.ID, "error", err)
			continue
		}
		allocated++
	}

	slog.Info("分配客户完成", "count", allocated, "employees", len(employees))
	return imported, allocated, nil
}
