package utils

import (
	"math/rand"
	"strings"

	"github.com/mozillazg/go-pinyin"
)

var commonSurnames = []string{
	"王", "李", "张", "刘", "陈", "杨", "赵", "黄", "周", "吴",
	"徐", "孙", "胡", "朱", "高", "林", "何", "郭", "马", "罗",
}
var commonNameCharacters = []string{
	"伟", "强", "芳", "敏", "静", "丽", "刚", "杰", "娟", "勇",
	"艳", "涛", "明", "军", "磊", "洋", "勇", "霞", "飞", "玲",
	"超", "华", "平", "辉", "梅", "鑫", "龙", "鹏", "玉", "斌",
	"庆", "建", "丹", "彬", "凤", "旭", "宁", "乐", "成", "欣",
}

func GenerateRandomChineseName(r *rand.Rand) string {
	surname := commonSurnames[r.Intn(len(commonSurnames))]
	nameLength := r.Intn(2) + 1
	name := ""

	for i := 0; i < nameLength; i++ {
		name += commonNameCharacters[r.Intn(len(commonNameCharacters))]
	}
	return surname + name
}

var digits = "0123456789"

// GenerateEmployeeIDFromChineseName 取每个字拼音的前缀，再拼上若干位数字
func GenerateEmployeeIDFromChineseName(r *rand.Rand, chineseName string) string {
	pinyinArray := pinyin.LazyConvert(chineseName, nil)
	var id strings.Builder

	for _, py := range pinyinArray {
		length := r.Intn(len(py)) + 1
		id.WriteString(py[:length])
	}

	digitsLength := r.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		id.WriteByte(digits[r.Intn(len(digits))])
	}

	return id.String()
}

var letters = []rune("abcdefghijklmnopqrstuvwxyz")

func GenerateRandomID(r *rand.Rand, letterLength int, digitLength int) string {
	randomID := make([]rune, letterLength+digitLength)
	for i := range randomID {
		if i < letterLength {
			randomID[i] = letters[r.Intn(len(letters))]
		} else {
			randomID[i] = rune(digits[r.Intn(len(digits))])
		}
	}
	return string(randomID)
}

// 使用 Fisher-Yates 洗牌算法来生成一个随机的非空子集
func GenerateRandomSubset[T any](r *rand.Rand, arr []T) []T {
	arrCopy := append([]T{}, arr...) // 复制数组，避免修改原数组

	for i := 0; i < len(arrCopy)-1; i++ {
		j := r.Intn(len(arrCopy)-i) + i
		arrCopy[i], arrCopy[j] = arrCopy[j], arrCopy[i]
	}

	if len(arrCopy) == 0 {
		return arrCopy
	}
	l := r.Intn(len(arrCopy)) + 1
	return arrCopy[:l]
}
