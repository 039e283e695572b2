package session

import "context"

// browserPlatform forwards platform effects to the connected browser, which
// performs them. Delivery is best effort.
type browserPlatform struct {
	publish func(Event)
}

func (p browserPlatform) WriteClipboard(_ context.Context, text string) error {
	p.publish(Event{Type: EventClipboard, Text: text})
	return nil
}

func (p browserPlatform) DownloadFile(_ context.Context, url, filename string) error {
	p.publish(Event{Type: EventDownload, URL: url, Filename: filename})
	return nil
}

func (p browserPlatform) OpenExternal(_ context.Context, url string) error {
	p.publish(Event{Type: EventOpen, URL: url})
	return nil
}
