package main

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	dbm "tripdeck/internal/models/db_models"
)

const sampleSeed = `
id: day1
date: "2026-02-18"
label: Day 1
location: 越南胡志明
items:
  - start_time: "10:30"
    title: 抵達與前置作業
    item_type: FLIGHT
    duration: 1.5小時
    location_query: Tan Son Nhat International Airport
  - start_time: "12:00"
    title: 交通移動：機場 ➔ 第三郡
    item_type: CAR_RENTAL
    sort_order: 7
  - title: Phở Hòa Pasteur
`

func TestParseSeed(t *testing.T) {
	now := time.UnixMilli(1771380000000)
	day, items, err := parseSeed(strings.NewReader(sampleSeed), now)
	require.NoError(t, err)

	require.Equal(t, "day1", day.ID)
	require.Equal(t, "2026-02-18", day.DateStr)
	require.Len(t, items, 3)

	require.Equal(t, dbm.ItemTypeFlight, items[0].ItemType)
	require.Equal(t, "1.5小時", *items[0].Duration)
	require.Equal(t, 1, *items[0].SortOrder)
	require.Equal(t, 7, *items[1].SortOrder)
	require.Equal(t, dbm.ItemTypeActivity, items[2].ItemType)
	require.Nil(t, items[2].StartTime)
	require.True(t, strings.HasPrefix(items[0].ID, "day1-1771380000000-"))
	require.NotEqual(t, items[0].ID, items[1].ID)
}

func TestParseSeedRejectsBadInput(t *testing.T) {
	_, _, err := parseSeed(strings.NewReader("items: []"), time.Now())
	require.Error(t, err)

	_, _, err = parseSeed(strings.NewReader("id: day1\nitems:\n  - title: x\n    item_type: BOAT\n"), time.Now())
	require.Error(t, err)
}

func TestParseSeedNormalizesStartTime(t *testing.T) {
	_, items, err := parseSeed(strings.NewReader("id: day2\nitems:\n  - title: Breakfast\n    start_time: \"9:05\"\n"), time.Now())
	require.NoError(t, err)
	require.Equal(t, "09:05", *items[0].StartTime)

	_, _, err = parseSeed(strings.NewReader("id: day2\nitems:\n  - title: Breakfast\n    start_time: \"25:00\"\n"), time.Now())
	require.Error(t, err)
	require.Contains(t, err.Error(), "start_time")
}

func TestPrintItemsTruncates(t *testing.T) {
	long := strings.Repeat("越", 60)
	item := dbm.ItineraryItem{Title: "A", Description: &long}

	var buf bytes.Buffer
	printItems(&buf, []dbm.ItineraryItem{item})

	out := buf.String()
	require.Contains(t, out, "Item 1: A")
	require.Contains(t, out, "  Desc: "+strings.Repeat("越", 50)+"...")
	require.Contains(t, out, "  Notes: N/A")
}

func TestDebugItem(t *testing.T) {
	item := debugItem("day3", time.UnixMilli(42))
	require.Equal(t, "debug-42", item.ID)
	require.Equal(t, "day3", item.DayID)
	require.Nil(t, item.SortOrder)
}

func TestParseSeedSampleFile(t *testing.T) {
	f, err := os.Open("testdata/day1.yaml")
	require.NoError(t, err)
	defer f.Close()

	day, items, err := parseSeed(f, time.Now())
	require.NoError(t, err)
	require.Equal(t, "Day 1", day.DayLabel)
	require.Len(t, items, 4)
	for i, it := range items {
		require.Equal(t, "day1", it.DayID)
		require.Equal(t, i+1, *it.SortOrder)
	}
	require.Equal(t, dbm.ItemTypeHotel, items[3].ItemType)
}
