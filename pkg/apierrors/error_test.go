package apierrors_test

import (
	"testing"

	"taskboard/pkg/apierrors"
	"taskboard/pkg/translator"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestMain(m *testing.M) {
	translator.Translator = i18n.NewBundle(language.English)
	err := translator.Translator.AddMessages(language.English, &i18n.Message{
		ID:    "taskNotFound",
		Other: "Task not found",
	})
	if err != nil {
		return
	}
	m.Run()
}

func TestCreateError_ReturnsJsonErr(t *testing.T) {
	err := apierrors.CreateError(404, "taskNotFound", "en")
	assert.Equal(t, 404, err.ErrDetails.Code)
	assert.Equal(t, "Task not found", err.ErrDetails.Message)
}

func TestCreateError_UnknownLangFallsBackToEnglish(t *testing.T) {
	err := apierrors.CreateError(404, "taskNotFound", "lv")
	assert.Equal(t, "Task not found", err.ErrDetails.Message)
}

func TestGetTransErrorMsg_FallbackToKey(t *testing.T) {
	msg := apierrors.GetTransErrorMsg("unknown_key", "en")
	assert.Equal(t, "unknown_key", msg)
}

func TestJsonErr_ErrorMethod(t *testing.T) {
	err := apierrors.CreateError(409, "taskNotFound", "en")
	assert.Equal(t, "Code: 409, Message: Task not found", err.Error())
}
