package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/mozillazg/go-pinyin"

	"github.com/ausf-dev/staffing-scheduler/backend/internal/domain"
)

var commonSurnames = []string{
	"王", "李", "张", "刘", "陈", "杨", "赵", "黄", "周", "吴",
	"徐", "孙", "胡", "朱", "高", "林", "何", "郭", "马", "罗",
}

var commonNameCharacters = []string{
	"伟", "强", "芳", "敏", "静", "丽", "刚", "杰", "娟", "勇",
	"艳", "涛", "明", "军", "磊", "洋", "霞", "飞", "玲", "超",
	"华", "平", "辉", "梅", "鑫", "龙", "鹏", "玉", "斌", "欣",
}

var knownSkills = []string{"普工", "技工", "叉车司机"}

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

func GenerateUsernameFromChineseName(chineseName string) string {
	pinyinArray := pinyin.LazyConvert(chineseName, nil)
	username := ""

	for _, py := range pinyinArray {
		length := rand.Intn(len(py)) + 1
		username += py[:length]
	}

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

func GenerateRandomSkills() []string {
	// 至少一项技能，技能之间不重复
	n := rand.Intn(len(knownSkills)) + 1
	shuffled := append([]string{}, knownSkills...)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:n]
}

func GenerateRandomStaffMember(emailDomainName string) *domain.StaffMember {
	fullName := GenerateRandomChineseName()
	username := GenerateUsernameFromChineseName(fullName)

	return &domain.StaffMember{
		Name:   fullName,
		Email:  username + "@" + emailDomainName,
		Phone:  fmt.Sprintf("138%08d", rand.Intn(100000000)),
		Rating: float64(rand.Intn(21)+30) / 10, // 3.0 ~ 5.0
		Skills: GenerateRandomSkills(),
	}
}

var clientNames = []string{"华东仓储", "顺达物流", "宏远制造", "联运港务", "中天建材"}
var jobSites = []string{"一号仓库", "南区装卸场", "流水线车间", "三号码头", "配送中心"}

// GenerateRandomStaffingRequest 随机生成固定日期或长期的用工请求
func GenerateRandomStaffingRequest() *domain.StaffingRequest {
	contact := GenerateRandomChineseName()
	req := &domain.StaffingRequest{
		Client:        clientNames[rand.Intn(len(clientNames))],
		JobSite:       jobSites[rand.Intn(len(jobSites))],
		ContactPerson: contact,
		ContactEmail:  GenerateUsernameFromChineseName(contact) + "@example.com",
		Phone:         fmt.Sprintf("021-%08d", rand.Intn(100000000)),
		Description:   "随机生成的演示请求",
		Type:          domain.RequestTypeLabour,
		Status:        domain.RequestStatusUnstaffed,
	}

	skill := knownSkills[rand.Intn(len(knownSkills))]
	quantity := int32(rand.Intn(3) + 1)

	if rand.Intn(2) == 0 {
		req.DateType = domain.DateTypeFixed
		numDates := rand.Intn(5) + 1
		dates := make([]string, 0, numDates)
		shiftTimes := make(map[string]domain.ShiftTime, numDates)

		day := time.Now().AddDate(0, 0, rand.Intn(14)+1)
		for i := 0; i < numDates; i++ {
			dateStr := day.Format("2006-01-02")
			dates = append(dates, dateStr)
			shiftTimes[dateStr] = domain.ShiftTime{StartTime: "07:00", EndTime: "15:00"}
			day = day.AddDate(0, 0, rand.Intn(3)+1)
		}

		req.SkillRequirements = []domain.SkillRequirement{
			{Skill: skill, Quantity: quantity, Dates: dates, ShiftTimes: shiftTimes},
		}
		return req
	}

	req.DateType = domain.DateTypeOngoing
	req.StartDate = time.Now().AddDate(0, 0, rand.Intn(14)+1).Format("2006-01-02")

	allDays := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	rand.Shuffle(len(allDays), func(i, j int) {
		allDays[i], allDays[j] = allDays[j], allDays[i]
	})
	numDays := rand.Intn(4) + 1

	schedule := make([]domain.WeekdayShift, 0, numDays)
	for _, day := range allDays[:numDays] {
		schedule = append(schedule, domain.WeekdayShift{Day: day, StartTime: "07:00", EndTime: "15:00"})
	}

	req.SkillRequirements = []domain.SkillRequirement{
		{Skill: skill, Quantity: quantity, WeekdaySchedule: schedule},
	}
	return req
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	randomPassword := make([]rune, length)
	for i := range randomPassword {
		randomPassword[i] = letters[rand.Intn(len(letters))]
	}
	return string(randomPassword)
}
