package tools

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestPasswordStrength(t *testing.T) {
	require.NoError(t, ValidatePasswordStrength("abcdefg1"))
	require.Error(t, ValidatePasswordStrength("abc1"))
	require.Error(t, ValidatePasswordStrength("abcdefgh"))
	require.Error(t, ValidatePasswordStrength("12345678"))
	require.NoError(t, ValidatePasswordStrength(strings.Repeat("a", 71)+"1"))
	require.Error(t, ValidatePasswordStrength(strings.Repeat("a", 72)+"1"))
}

func TestPasswordRoundTrip(t *testing.T) {
	hashed, err := PasswordEncrypt("abcdefg1")
	require.NoError(t, err)
	require.NotEqual(t, "abcdefg1", hashed)
	require.True(t, PasswordCompare("abcdefg1", hashed))
	require.False(t, PasswordCompare("abcdefg2", hashed))

	_, err = PasswordEncrypt(strings.Repeat("a", 80))
	require.Error(t, err)
}

type Base struct {
	ID uint `excel:"编号"`
}

type row struct {
	Base
	Name   string  `excel:"姓名"`
	Remark *string `excel:"备注"`
	Secret string  `excel:"-"`
}

func TestWriteSheet(t *testing.T) {
	remark := "ok"
	f := excelize.NewFile()
	defer f.Close()

	err := WriteSheet(f, "报名", []row{
		{Base: Base{ID: 1}, Name: "张三", Remark: &remark, Secret: "x"},
		{Base: Base{ID: 2}, Name: "李四"},
	})
	require.NoError(t, err)

	rows, err := f.GetRows("报名")
	require.NoError(t, err)
	require.Equal(t, []string{"编号", "姓名", "备注"}, rows[0])
	require.Equal(t, []string{"1", "张三", "ok"}, rows[1])
	require.Equal(t, []string{"2", "李四"}, rows[2])
}
