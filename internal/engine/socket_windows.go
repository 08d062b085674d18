package engine

const defaultSocket = "npipe:////./pipe/docker_engine"
