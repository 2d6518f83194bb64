package clog

import "fmt"
import "os"
import "strings"
import "sync/atomic"
import "time"

import "github.com/sirgallo/rdoc/pkg/utils"


//=========================================== Custom Logger


var levelRank = map[LogLevel]int32{ Debug: 0, Info: 1, Warn: 2, Error: 3, Fatal: 4 }
var minLevel atomic.Int32

func init() {
	SetLevel(LogLevel(os.Getenv(LogLevelEnv)))
}

func NewCustomLog(name string) *CustomLog {
	return &CustomLog{
		Name: name,
	}
}

/*
	Set Level:
		messages below the level are dropped, unknown levels fall back to Debug
		level names match case insensitively (debug, INFO, ...)
*/

func SetLevel(level LogLevel) {
	for known, rank := range levelRank {
		if strings.EqualFold(string(known), string(level)) {
			minLevel.Store(rank)
			return
		}
	}

	minLevel.Store(levelRank[Debug])
}

func (cLog *CustomLog) Debug(msg ...interface{}) {
	cLog.formatOutput(Debug, msg)
}

func (cLog *CustomLog) Info(msg ...interface{}) {
	cLog.formatOutput(Info, msg)
}

func (cLog *CustomLog) Warn(msg ...interface{}) {
	cLog.formatOutput(Warn, msg)
}

func (cLog *CustomLog) Error(msg ...interface{}) {
	cLog.formatOutput(Error, msg)
}

func (cLog *CustomLog) Fatal(msg ...interface{}) {
	cLog.formatOutput(Fatal, msg)
	os.Exit(1)
}

func (cLog *CustomLog) formatOutput(level LogLevel, msg []interface{}) {
	if levelRank[level] < minLevel.Load() { return }

	currTime := time.Now()
	formattedTime := currTime.Format("2006-01-02 15:04:05.000")

	encodedMsg := func () string {
		encodeTransform := func(chunk interface{}) string {
			if str, ok := chunk.(string); ok { return str }

			encoded, _ := utils.EncodeStructToString[interface{}](chunk)
			return encoded
		}

		encodedChunks := utils.Map[interface{}, string](msg, encodeTransform)
		return strings.Join(encodedChunks, " ")
	}()

	color := func () LogColor {
		switch level {
			case Debug:
				return DebugColor
			case Info:
				return InfoColor
			case Warn:
				return WarnColor
			case Error:
				return ErrorColor
			default:
				return FatalColor
		}
	}()

	fmt.Printf("%s[%s](%s) %s: %s\n", color, cLog.Name, formattedTime, Bold + string(level), Reset + encodedMsg)
}
