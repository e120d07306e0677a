package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/samirrijal/bucketlist/internal/core/domain"
)

func TestEffectAttrs(t *testing.T) {
	vp := domain.Viewport{Center: domain.GeoPoint{Lat: 30.03217, Lon: -89.92707}, Span: domain.FocusSpan}

	attrs := effectAttrs(domain.Effect{Kind: domain.EffectViewportChanged, Viewport: &vp, Animated: true})
	assert.Equal(t, []any{"kind", "viewport_changed", "lat", 30.03217, "lon", -89.92707, "span", 0.01, "animated", true}, attrs)

	attrs = effectAttrs(domain.Effect{Kind: domain.EffectPresentDetail, AttractionID: "abc"})
	assert.Equal(t, []any{"kind", "present_detail", "attraction", "abc"}, attrs)

	attrs = effectAttrs(domain.Effect{Kind: domain.EffectDismissDetail})
	assert.Equal(t, []any{"kind", "dismiss_detail"}, attrs)
}
