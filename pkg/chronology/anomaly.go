package chronology

import (
	"sort"
	"time"
)

const (
	// DefaultDiscontinuityThreshold is the gap-to-median ratio above which a
	// gap counts as a discontinuity.
	DefaultDiscontinuityThreshold = 3.0

	// discontinuityFloor flags any gap over 30 days regardless of the
	// dataset's own statistics.
	discontinuityFloor = 30 * 24 * time.Hour
)

// DetectDiscontinuities flags scenes that follow an abnormally large time
// gap. A gap is abnormal when it exceeds threshold times the median gap, or
// the absolute 30-day floor; either condition alone is enough. The returned
// indices are positions in the input slice of the *later* scene of each pair.
//
// The input is assumed already sorted chronologically; scenes without a
// parseable "when" are ignored. Fewer than three dated scenes, or a dataset
// whose gaps are all zero, yields no flags.
func DetectDiscontinuities(items []TimelineItem, threshold float64) []int {
	if threshold <= 0 {
		threshold = DefaultDiscontinuityThreshold
	}

	dated := datedScenes(items)
	if len(dated) < 3 {
		return nil
	}

	gaps := make([]time.Duration, len(dated)-1)
	allZero := true
	for i := 0; i < len(dated)-1; i++ {
		gaps[i] = dated[i+1].instant.Sub(dated[i].instant)
		if gaps[i] != 0 {
			allZero = false
		}
	}
	if allZero {
		return nil
	}

	median := medianGap(gaps)

	var flagged []int
	for i, gap := range gaps {
		if float64(gap) > threshold*float64(median) || gap > discontinuityFloor {
			flagged = append(flagged, dated[i+1].index)
		}
	}
	return flagged
}

// medianGap returns the element at len/2 of the sorted gaps. For even-length
// inputs this picks the upper middle element rather than averaging the two
// middle ones; longstanding behavior, kept as is.
func medianGap(gaps []time.Duration) time.Duration {
	sorted := make([]time.Duration, len(gaps))
	copy(sorted, gaps)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	return sorted[len(sorted)/2]
}

// DetectSceneOverlaps flags scenes whose stated duration runs past the start
// of the next dated scene. For each consecutive dated pair, the earlier
// scene's index is flagged when its parsed nonzero duration pushes beyond the
// later scene's instant.
func DetectSceneOverlaps(items []TimelineItem) []int {
	dated := datedScenes(items)

	var flagged []int
	for i := 0; i < len(dated)-1; i++ {
		earlier := dated[i]
		ms, ok := ParseDuration(items[earlier.index].Duration)
		if !ok || ms <= 0 {
			continue
		}
		end := earlier.instant.Add(time.Duration(ms * float64(time.Millisecond)))
		if end.After(dated[i+1].instant) {
			flagged = append(flagged, earlier.index)
		}
	}
	return flagged
}

type datedScene struct {
	index   int
	instant time.Time
}

func datedScenes(items []TimelineItem) []datedScene {
	var dated []datedScene
	for i, item := range items {
		instant, err := ParseWhen(item.When)
		if err != nil {
			continue
		}
		dated = append(dated, datedScene{index: i, instant: instant})
	}
	return dated
}
