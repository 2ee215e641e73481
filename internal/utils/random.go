package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/fieldforce-dev/workforce/backend/internal/domain"
	"github.com/mozillazg/go-pinyin"
	"golang.org/x/crypto/bcrypt"
)

var commonSurnames = []string{
	"王", "李", "张", "刘", "陈", "杨", "赵", "黄", "周", "吴",
	"徐", "孙", "胡", "朱", "高", "林", "何", "郭", "马", "罗",
}
var commonNameCharacters = []string{
	"伟", "强", "芳", "敏", "静", "丽", "刚", "杰", "娟", "勇",
	"艳", "涛", "明", "军", "磊", "洋", "霞", "飞", "玲", "超",
	"华", "平", "辉", "梅", "鑫", "龙", "鹏", "玉", "斌", "庆",
	"建", "丹", "彬", "凤", "旭", "宁", "乐", "成", "欣",
}

func GenerateRandomChineseName() string {
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	nameLength := rand.Intn(2) + 1
	name := ""

	for i := 0; i < nameLength; i++ {
		name += commonNameCharacters[rand.Intn(len(commonNameCharacters))]
	}
	return surname + name
}

var digits = "0123456789"

// GenerateUserIDFromChineseName 取每个字拼音的随机前缀，再拼上 1~3 位数字作为登录账号
func GenerateUserIDFromChineseName(chineseName string) string {
	pinyinArray := pinyin.LazyConvert(chineseName, nil)
	userID := ""

	for _, py := range pinyinArray {
		length := rand.Intn(len(py)) + 1
		userID += py[:length]
	}

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		userID += string(digits[rand.Intn(len(digits))])
	}

	return userID
}

// GenerateRandomUser 生成一个外勤员工账号，登录密码为参数 password 的值
func GenerateRandomUser(password string, emailDomainName string) (*domain.User, error) {
	fullName := GenerateRandomChineseName()
	userID := GenerateUserIDFromChineseName(fullName)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	email := userID + "@" + emailDomainName
	user := &domain.User{
		UserID:       userID,
		PasswordHash: string(passwordHash),
		FullName:     fullName,
		Email:        &email,
		Role:         domain.RoleEmployee,
	}

	return user, nil
}

var designations = []string{"Field Agent", "Senior Field Agent", "Sales Executive", "Area Supervisor"}

// GenerateRandomEmployee 为已有账号生成对应的员工档案，入职日期在过去三年内
func GenerateRandomEmployee(user *domain.User, manager string) *domain.Employee {
	joined := time.Now().AddDate(0, 0, -rand.Intn(3*365)).Format(time.DateOnly)
	born := time.Date(1970+rand.Intn(35), time.Month(rand.Intn(12)+1), rand.Intn(28)+1, 0, 0, 0, 0, time.UTC).Format(time.DateOnly)

	return &domain.Employee{
		EmpID:       "E" + GenerateRandomDigits(5),
		UserID:      user.UserID,
		Name:        user.FullName,
		Designation: designations[rand.Intn(len(designations))],
		Manager:     manager,
		DOB:         &born,
		JoinDate:    &joined,
		Address:     GenerateRandomAddress(),
	}
}

var businessSuffixes = []string{"贸易", "商行", "超市", "五金", "电器", "药房"}
var streets = []string{"中山路", "解放路", "人民路", "建设路", "和平街", "新华街"}

func GenerateRandomAddress() string {
	return fmt.Sprintf("%s%d号", streets[rand.Intn(len(streets))], rand.Intn(300)+1)
}

func GenerateRandomCustomer() *domain.Customer {
	owner := commonSurnames[rand.Intn(len(commonSurnames))]
	name := owner + "记" + businessSuffixes[rand.Intn(len(businessSuffixes))]
	letters := pinyin.LazyConvert(owner, nil)

	return &domain.Customer{
		Name:    name,
		Phone:   "1" + GenerateRandomDigits(10),
		Email:   fmt.Sprintf("%s%s@example.com", letters[0], GenerateRandomDigits(3)),
		Address: GenerateRandomAddress(),
	}
}

func GenerateRandomAd() *domain.Ad {
	return &domain.Ad{
		Title: fmt.Sprintf("限时优惠 %d 折", rand.Intn(5)+5),
	}
}

func GenerateRandomDigits(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = digits[rand.Intn(len(digits))]
	}
	return string(b)
}
