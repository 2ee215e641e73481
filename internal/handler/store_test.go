package handler

import (
	"database/sql"
	"sort"
	"sync"

	"github.com/fieldforce-dev/workforce/backend/internal/domain"
	"github.com/jackc/pgx/v5/pgconn"
)

type attendanceKey struct {
	employeeID int64
	date       string
}

// memStore 是 Store 的内存实现，语义与 repository 中的 SQL 保持一致
type memStore struct {
	mu    sync.Mutex
	calls int
	err   error // 不为空时所有写操作都返回该错误

	users      map[int64]*domain.User
	employees  []*domain.Employee
	customers  map[int64]*domain.Customer
	feedback   map[int64]*domain.Feedback
	attendance map[attendanceKey]*domain.Attendance
	ads        map[int64]*domain.Ad
	nextID     int64
}

func newMemStore() *memStore {
	return &memStore{
		users:      make(map[int64]*domain.User),
		customers:  make(map[int64]*domain.Customer),
		feedback:   make(map[int64]*domain.Feedback),
		attendance: make(map[attendanceKey]*domain.Attendance),
		ads:        make(map[int64]*domain.Ad),
	}
}

func (s *memStore) begin() func() {
	s.mu.Lock()
	s.calls++
	return s.mu.Unlock
}

func (s *memStore) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *memStore) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *memStore) Ping() error {
	defer s.begin()()
	return s.err
}

func (s *memStore) GetUserByID(id int64) (*domain.User, error) {
	defer s.begin()()
	u, ok := s.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *u
	return &copied, nil
}

func (s *memStore) GetUserByUserID(userID string) (*domain.User, error) {
	defer s.begin()()
	for _, u := range s.users {
		if u.UserID == userID {
			copied := *u
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *memStore) GetAllUsers() ([]*domain.User, error) {
	defer s.begin()()
	users := make([]*domain.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID > users[j].ID })
	return users, nil
}

func (s *memStore) CreateUser(user *domain.User) error {
	defer s.begin()()
	if s.err != nil {
		return s.err
	}
	for _, u := range s.users {
		if u.UserID == user.UserID {
			return &pgconn.PgError{Code: "23505", ConstraintName: "users_user_id_key"}
		}
	}
	user.ID = s.id()
	user.IsActive = true
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *memStore) UpdateUserStatus(id int64, isActive bool) error {
	defer s.begin()()
	u, ok := s.users[id]
	if !ok {
		return sql.ErrNoRows
	}
	u.IsActive = isActive
	return nil
}

func (s *memStore) DeleteUser(id int64) error {
	defer s.begin()()
	if _, ok := s.users[id]; !ok {
		return sql.ErrNoRows
	}
	delete(s.users, id)
	return nil
}

func (s *memStore) GetAllEmployees() ([]*domain.Employee, error) {
	defer s.begin()()
	return append([]*domain.Employee{}, s.employees...), nil
}

func (s *memStore) CreateEmployee(e *domain.Employee) error {
	defer s.begin()()
	if s.err != nil {
		return s.err
	}
	e.ID = s.id()
	s.employees = append(s.employees, e)
	return nil
}

func (s *memStore) GetCustomers(employeeID *int64) ([]*domain.Customer, error) {
	defer s.begin()()
	customers := make([]*domain.Customer, 0)
	for _, c := range s.customers {
		if employeeID != nil && (c.AssignedTo == nil || *c.AssignedTo != *employeeID) {
			continue
		}
		copied := *c
		customers = append(customers, &copied)
	}
	sort.Slice(customers, func(i, j int) bool { return customers[i].ID < customers[j].ID })
	if len(customers) > 500 {
		customers = customers[:500]
	}
	return customers, nil
}

func (s *memStore) ImportCustomers(customers []*domain.Customer) (int, error) {
	defer s.begin()()
	if s.err != nil {
		return 0, s.err
	}
	for _, c := range customers {
		c.ID = s.id()
		s.customers[c.ID] = c
	}
	return len(customers), nil
}

func (s *memStore) AllocateCustomer(customerID int64, employeeID int64) error {
	defer s.begin()()
	c, ok := s.customers[customerID]
	if !ok {
		return sql.ErrNoRows
	}
	c.AssignedTo = &employeeID
	return nil
}

func (s *memStore) DeallocateCustomer(customerID int64) error {
	defer s.begin()()
	c, ok := s.customers[customerID]
	if !ok {
		return sql.ErrNoRows
	}
	c.AssignedTo = nil
	return nil
}

func (s *memStore) GetAllFeedback() ([]*domain.Feedback, error) {
	defer s.begin()()
	feedback := make([]*domain.Feedback, 0, len(s.feedback))
	for _, f := range s.feedback {
		feedback = append(feedback, f)
	}
	sort.Slice(feedback, func(i, j int) bool { return feedback[i].ID > feedback[j].ID })
	return feedback, nil
}

func (s *memStore) CreateFeedback(f *domain.Feedback) error {
	defer s.begin()()
	if s.err != nil {
		return s.err
	}
	f.ID = s.id()
	s.feedback[f.ID] = f
	return nil
}

func (s *memStore) UpdateFeedback(f *domain.Feedback) error {
	defer s.begin()()
	existing, ok := s.feedback[f.ID]
	if !ok {
		return sql.ErrNoRows
	}
	existing.Notes, existing.Lat, existing.Lng = f.Notes, f.Lat, f.Lng
	return nil
}

func (s *memStore) DeleteFeedback(id int64) error {
	defer s.begin()()
	if _, ok := s.feedback[id]; !ok {
		return sql.ErrNoRows
	}
	delete(s.feedback, id)
	return nil
}

func (s *memStore) GetAttendanceByEmployee(employeeID int64) ([]*domain.Attendance, error) {
	defer s.begin()()
	records := make([]*domain.Attendance, 0)
	for key, a := range s.attendance {
		if key.employeeID == employeeID {
			copied := *a
			records = append(records, &copied)
		}
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Date > records[j].Date })
	return records, nil
}

func (s *memStore) CheckIn(employeeID int64, date string, loginTime string) error {
	defer s.begin()()
	key := attendanceKey{employeeID, date}
	a, ok := s.attendance[key]
	if !ok {
		a = &domain.Attendance{EmployeeID: employeeID, Date: date}
		s.attendance[key] = a
	}
	a.Login = &loginTime
	a.Status = domain.AttendancePresent
	return nil
}

func (s *memStore) CheckOut(employeeID int64, date string, logoutTime string) (int64, error) {
	defer s.begin()()
	a, ok := s.attendance[attendanceKey{employeeID, date}]
	if !ok {
		return 0, nil
	}
	a.Logout = &logoutTime
	return 1, nil
}

func (s *memStore) GetActiveAds() ([]*domain.Ad, error) {
	defer s.begin()()
	ads := make([]*domain.Ad, 0)
	for _, ad := range s.ads {
		if ad.IsActive {
			copied := *ad
			ads = append(ads, &copied)
		}
	}
	sort.Slice(ads, func(i, j int) bool { return ads[i].ID > ads[j].ID })
	return ads, nil
}

func (s *memStore) CreateAd(ad *domain.Ad) error {
	defer s.begin()()
	if s.err != nil {
		return s.err
	}
	ad.ID = s.id()
	ad.IsActive = true
	copied := *ad
	s.ads[ad.ID] = &copied
	return nil
}

func (s *memStore) ToggleAd(id int64) error {
	defer s.begin()()
	ad, ok := s.ads[id]
	if !ok {
		return sql.ErrNoRows
	}
	ad.IsActive = !ad.IsActive
	return nil
}

func (s *memStore) DeleteAd(id int64) error {
	defer s.begin()()
	if _, ok := s.ads[id]; !ok {
		return sql.ErrNoRows
	}
	delete(s.ads, id)
	return nil
}
