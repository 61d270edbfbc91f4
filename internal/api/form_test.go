package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormValue(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{"data1=%7B%22a%22%3A1%7D", `{"a":1}`},
		{"data1=a+b", "a b"},
		{"note=100%&data1=x", "x"},
		{"data1=x&note=100%", "x"},
		{"data1=ARD%&x=1", "ARD%"},
		{"data1=%zz%4", "%zz%4"},
		{"data1=&data1=second", "second"},
		{"data1", ""},
		{"other=1", ""},
		{"data1=a=b", "a=b"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formValue(tt.body, "data1"), tt.body)
	}
}
