package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"counsellor/internal/domain"
)

type upperService struct{}

func (upperService) Respond(_ context.Context, st *domain.SessionState, msg string) string {
	reply := strings.ToUpper(msg)
	st.Append(domain.RoleUser, msg)
	st.Append(domain.RoleAssistant, reply)
	return reply
}

func TestRunPlain(t *testing.T) {
	st := &domain.SessionState{}
	st.Append(domain.RoleAssistant, "hi there")
	var out bytes.Buffer

	runPlain(context.Background(), upperService{}, st, strings.NewReader("coding\n\nart\n"), &out)

	assert.Equal(t, "hi there\n> CODING\n> > ART\n> \n", out.String())
	assert.Len(t, st.History, 5)
}
