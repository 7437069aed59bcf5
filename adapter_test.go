package vkquad

import (
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	vk "github.com/vulkan-go/vulkan"
)

func TestCollectAdaptersSkipsFailures(t *testing.T) {
	complete := QueueFamily{Index: 0, Flags: graphicsFlags, Count: 1, Present: true}
	results := []struct {
		adapter Adapter
		err     error
	}{
		{err: errors.New("surface formats of broken: device lost")},
		{adapter: testAdapter("good", complete)},
		{adapter: testAdapter("spare", complete)},
	}
	calls := 0
	query := func(vk.PhysicalDevice) (Adapter, error) {
		r := results[calls]
		calls++
		return r.adapter, r.err
	}

	log, buf := captureLogger()
	adapters, err := collectAdapters(make([]vk.PhysicalDevice, len(results)), query, log)
	if err != nil {
		t.Fatal(err)
	}
	if len(adapters) != 2 || adapters[0].Name != "good" || adapters[1].Name != "spare" {
		t.Fatalf("adapters = %v", adapters)
	}
	if !strings.Contains(buf.String(), "skipping adapter 0") || !strings.Contains(buf.String(), "device lost") {
		t.Errorf("warning = %q", buf.String())
	}

	selected, _, err := SelectAdapter(adapters, LastMatch)
	if err != nil || selected.Name != "good" {
		t.Errorf("SelectAdapter() = %v, %v, want good", selected, err)
	}
}

func TestCollectAdaptersAllFail(t *testing.T) {
	query := func(vk.PhysicalDevice) (Adapter, error) {
		return Adapter{}, errors.New("present modes of gpu: out of host memory")
	}
	log, _ := captureLogger()
	_, err := collectAdapters(make([]vk.PhysicalDevice, 2), query, log)
	if !errors.Is(err, ErrNoSuitableDevice) {
		t.Fatalf("error = %v, want ErrNoSuitableDevice", err)
	}
	if !strings.Contains(err.Error(), "out of host memory") {
		t.Errorf("error %q does not carry the query failure", err)
	}
}
