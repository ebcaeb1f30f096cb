package mortality

import "time"

func SetDownloadDelay(d time.Duration) (restore func()) {
	prev := downloadDelay
	downloadDelay = d
	return func() { downloadDelay = prev }
}
