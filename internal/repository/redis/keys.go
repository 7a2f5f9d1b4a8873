package redis

import "fmt"

const ns = "tessera:v1"

func KeyEventSummary(eventID int64) string {
	return fmt.Sprintf("%s:event:%d:summary", ns, eventID)
}

func KeyEventAvailability(eventID int64) string {
	return fmt.Sprintf("%s:event:%d:availability", ns, eventID)
}

func KeyEventTicketTypes(eventID int64) string {
	return fmt.Sprintf("%s:event:%d:tickettypes", ns, eventID)
}

func RateLimitPrefix() string {
	return ns + ":rl"
}

func ChannelEventsChanged() string {
	return ns + ":events:changed"
}
