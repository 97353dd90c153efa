// Package config provides configuration parsing for vrender projects.
//
// The configuration is stored in vrender.json next to the tree files.
// A missing file is not an error; defaults are used instead.
//
// # Configuration File Structure
//
//	{
//	  "name": "counter",
//	  "logLevel": "info",
//	  "host": "html",
//	  "preview": {
//	    "host": "localhost",
//	    "port": 4000,
//	    "pretty": true
//	  },
//	  "metrics": {
//	    "namespace": "vrender"
//	  },
//	  "tracing": {
//	    "enabled": true,
//	    "tracerName": "vrender"
//	  },
//	  "publish": {
//	    "bucket": "previews",
//	    "region": "eu-west-1",
//	    "prefix": "counter/"
//	  }
//	}
//
// # Environment
//
// VRENDER_PORT and VRENDER_LOG_LEVEL override preview.port and logLevel.
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Preview:", cfg.PreviewAddress())
package config
