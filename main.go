package main

import (
	"fmt"
	"geokit/config"
	"geokit/web"
	"github.com/alecthomas/kong"
	"github.com/hauke96/sigolo/v2"
	"strings"
)

const VERSION = "v0.1.0"

// RepresentationFlags select the form of the geohashes a command reads and writes.
type RepresentationFlags struct {
	Repr string `help:"Representation of geohashes: string, int or big." enum:"string,int,big" default:"string" short:"r"`
	Bits int    `help:"Bit width of integer geohashes. Defaults to the configured width of the representation." placeholder:"<bits>" short:"b"`
}

var cli struct {
	Logging string      `help:"Logging verbosity (info, debug or trace). Defaults to the configured level." short:"l"`
	Version VersionFlag `help:"Print version information and quit" name:"version" short:"v"`
	Config  string      `help:"The config file. Without it, an optional geokit.yaml in the working directory is used." placeholder:"<config-file>" short:"c" type:"path"`
	Format  string      `help:"Output format." enum:"text,json,geojson" default:"text" short:"f"`
	Output  string      `help:"Writes GeoJSON output into this file instead of stdout." placeholder:"<geojson-file>" short:"o" type:"path"`

	Encode struct {
		Latitude       string              `help:"Latitude in degrees." arg:"" name:"latitude"`
		Longitude      string              `help:"Longitude in degrees." arg:"" name:"longitude"`
		Precision      string              `help:"Number of geohash characters or 'auto' to derive it from the decimal places of the input." placeholder:"<chars|auto>" short:"p"`
		Representation RepresentationFlags `embed:""`
	} `cmd:"" help:"Encodes a coordinate into a geohash."`
	Decode struct {
		Geohash        string              `help:"The geohash to decode." arg:"" name:"geohash"`
		Representation RepresentationFlags `embed:""`
	} `cmd:"" help:"Decodes a geohash into the center of its cell and the error margin."`
	Neighbors struct {
		Geohash        string              `help:"The geohash of the center cell." arg:"" name:"geohash"`
		Representation RepresentationFlags `embed:""`
	} `cmd:"" help:"Returns all 8 adjacent cells of a geohash."`
	Neighbor struct {
		Geohash        string              `help:"The geohash of the center cell." arg:"" name:"geohash"`
		Direction      string              `help:"Direction like 'north' or 'ne'." arg:"" name:"direction"`
		Representation RepresentationFlags `embed:""`
	} `cmd:"" help:"Returns the adjacent cell of a geohash in the given direction."`
	Bboxes struct {
		MinLat         string              `help:"Southern border." arg:"" name:"min-lat"`
		MinLon         string              `help:"Western border." arg:"" name:"min-lon"`
		MaxLat         string              `help:"Northern border." arg:"" name:"max-lat"`
		MaxLon         string              `help:"Eastern border." arg:"" name:"max-lon"`
		Precision      int                 `help:"Number of geohash characters. Defaults to the configured precision." placeholder:"<chars>" short:"p"`
		Representation RepresentationFlags `embed:""`
	} `cmd:"" help:"Lists all cells covering the given area, row by row starting in the south-west."`
	Query struct {
		Geohash        string              `help:"The geohash of the queried cell." arg:"" name:"geohash"`
		Depth          int                 `help:"Bit width of the indexed integer geohashes. Only used for int geohashes." default:"52" short:"d"`
		Representation RepresentationFlags `embed:""`
	} `cmd:"" help:"Returns the range of indexed geohashes within the cell of the given geohash."`
	Circle struct {
		Latitude       string              `help:"Latitude of the center in degrees." arg:"" name:"latitude"`
		Longitude      string              `help:"Longitude of the center in degrees." arg:"" name:"longitude"`
		Radius         string              `help:"Radius of the circle." arg:"" name:"radius"`
		Unit           string              `help:"Unit of the radius: m, km, ft or mi. Defaults to the configured unit." short:"u"`
		Representation RepresentationFlags `embed:""`
	} `cmd:"" help:"Returns the query ranges of the cells covering the given circle."`
	Distance struct {
		Lat1   string `help:"Latitude of the first coordinate." arg:"" name:"lat1"`
		Lon1   string `help:"Longitude of the first coordinate." arg:"" name:"lon1"`
		Lat2   string `help:"Latitude of the second coordinate." arg:"" name:"lat2"`
		Lon2   string `help:"Longitude of the second coordinate." arg:"" name:"lon2"`
		Unit   string `help:"Unit of the result: m, km, ft or mi. Defaults to the configured unit." short:"u"`
		Method string `help:"Either the spherical haversine formula or the ellipsoidal one of Vincenty." enum:"haversine,vincenty" default:"haversine" short:"m"`
	} `cmd:"" help:"Returns the distance and the initial bearing between two coordinates."`
	Destination struct {
		Latitude  string `help:"Latitude of the start in degrees." arg:"" name:"latitude"`
		Longitude string `help:"Longitude of the start in degrees." arg:"" name:"longitude"`
		Distance  string `help:"Distance to travel." arg:"" name:"distance"`
		Bearing   string `help:"Bearing in degrees clockwise from north." arg:"" name:"bearing"`
		Unit      string `help:"Unit of the distance: m, km, ft or mi. Defaults to the configured unit." short:"u"`
	} `cmd:"" help:"Returns the coordinate reached by travelling the given distance along the given bearing."`
	Serve struct{} `cmd:"" help:"Starts the HTTP server offering all other commands as endpoints."`
}

type VersionFlag string

func (v VersionFlag) Decode(ctx *kong.DecodeContext) error { return nil }
func (v VersionFlag) IsBool() bool                         { return true }
func (v VersionFlag) BeforeApply(app *kong.Kong, vars kong.Vars) error {
	fmt.Println(vars["version"])
	app.Exit(0)
	return nil
}

func main() {
	ctx := kong.Parse(
		&cli,
		kong.Name("geokit"),
		kong.Description("Encodes coordinates into geohashes and answers geometric questions about them. Use '--' before negative numbers, e.g. 'geokit encode -- -33.86 151.2'."),
		kong.Vars{
			"version": VERSION,
		},
	)

	cfg, err := config.Load(cli.Config)
	if err != nil {
		sigolo.SetDefaultFormatFunctionAll(sigolo.LogPlain)
		sigolo.FatalCheck(err)
	}

	logging := cli.Logging
	if logging == "" {
		logging = cfg.Logging
	}
	if strings.ToLower(logging) == "debug" {
		sigolo.SetDefaultLogLevel(sigolo.LOG_DEBUG)
	} else if strings.ToLower(logging) == "trace" {
		sigolo.SetDefaultLogLevel(sigolo.LOG_TRACE)
	} else if strings.ToLower(logging) == "info" {
		sigolo.SetDefaultLogLevel(sigolo.LOG_INFO)
		sigolo.SetDefaultFormatFunctionAll(sigolo.LogPlain)
	} else {
		sigolo.SetDefaultFormatFunctionAll(sigolo.LogPlain)
		sigolo.Fatalf("Unknown logging level '%s'", logging)
	}

	out := &output{format: cli.Format, writer: stdout, file: cli.Output}
	defaults := cfg.Defaults

	switch ctx.Command() {
	case "encode <latitude> <longitude>":
		args := cli.Encode
		err = runEncode(out, defaults, args.Latitude, args.Longitude, args.Precision, args.Representation)
	case "decode <geohash>":
		err = runDecode(out, defaults, cli.Decode.Geohash, cli.Decode.Representation)
	case "neighbors <geohash>":
		err = runNeighbors(out, defaults, cli.Neighbors.Geohash, cli.Neighbors.Representation)
	case "neighbor <geohash> <direction>":
		args := cli.Neighbor
		err = runNeighbor(out, defaults, args.Geohash, args.Direction, args.Representation)
	case "bboxes <min-lat> <min-lon> <max-lat> <max-lon>":
		args := cli.Bboxes
		err = runBoundingBoxes(out, defaults, [4]string{args.MinLat, args.MinLon, args.MaxLat, args.MaxLon}, args.Precision, args.Representation)
	case "query <geohash>":
		args := cli.Query
		err = runQuery(out, defaults, args.Geohash, args.Depth, args.Representation)
	case "circle <latitude> <longitude> <radius>":
		args := cli.Circle
		err = runCircle(out, defaults, args.Latitude, args.Longitude, args.Radius, args.Unit, args.Representation)
	case "distance <lat1> <lon1> <lat2> <lon2>":
		args := cli.Distance
		err = runDistance(out, defaults, [4]string{args.Lat1, args.Lon1, args.Lat2, args.Lon2}, args.Unit, args.Method)
	case "destination <latitude> <longitude> <distance> <bearing>":
		args := cli.Destination
		err = runDestination(out, defaults, args.Latitude, args.Longitude, args.Distance, args.Bearing, args.Unit)
	case "serve":
		if cfg.Server.UseTls() {
			web.StartServerTls(cfg.Server, defaults)
		} else {
			web.StartServer(cfg.Server, defaults)
		}
	default:
		sigolo.Errorf("Unknown command '%s'", ctx.Command())
	}
	sigolo.FatalCheck(err)
}
