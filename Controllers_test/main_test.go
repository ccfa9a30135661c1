package Controllers_test

import (
	"os"
	"testing"

	"github.com/yeremiapane/cafe-app/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	os.Exit(m.Run())
}
