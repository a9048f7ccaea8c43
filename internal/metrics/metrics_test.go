package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/akshaysalvi/portfolio/internal/avatar"
)

func TestObserveAvatar(t *testing.T) {
	okBefore := testutil.ToFloat64(AvatarGenerationsTotal.WithLabelValues("ok"))
	encodeBefore := testutil.ToFloat64(AvatarGenerationsTotal.WithLabelValues("encode"))
	otherBefore := testutil.ToFloat64(AvatarGenerationsTotal.WithLabelValues("error"))
	fontBefore := testutil.ToFloat64(AvatarFontSourceTotal.WithLabelValues("goregular"))

	ObserveAvatar(&avatar.Image{Font: "goregular"}, nil)
	ObserveAvatar(nil, &avatar.GenerationError{Stage: avatar.StageEncode, Err: errors.New("boom")})
	ObserveAvatar(nil, errors.New("unexpected"))

	assert.Equal(t, okBefore+1, testutil.ToFloat64(AvatarGenerationsTotal.WithLabelValues("ok")))
	assert.Equal(t, encodeBefore+1, testutil.ToFloat64(AvatarGenerationsTotal.WithLabelValues("encode")))
	assert.Equal(t, otherBefore+1, testutil.ToFloat64(AvatarGenerationsTotal.WithLabelValues("error")))
	assert.Equal(t, fontBefore+1, testutil.ToFloat64(AvatarFontSourceTotal.WithLabelValues("goregular")))
}
